package twitterapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeTweetResult(t *testing.T, raw string) *tweetResult {
	t.Helper()
	var res tweetResult
	require.NoError(t, json.Unmarshal([]byte(raw), &res))
	return &res
}

func TestNormalizeDropsIncompleteTweets(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no legacy", `{"rest_id":"1","core":{"user_results":{"result":{"legacy":{"screen_name":"x"}}}}}`},
		{"no core", `{"rest_id":"1","legacy":{"id_str":"1","full_text":"hi"}}`},
		{"empty user result", `{"rest_id":"1","legacy":{"id_str":"1"},"core":{"user_results":{}}}`},
		{"no id anywhere", `{"legacy":{"full_text":"hi"},"core":{"user_results":{"result":{"legacy":{"screen_name":"x"}}}}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := decodeTweetResult(t, tc.raw).normalize()
			assert.False(t, ok)
		})
	}
}

func TestNormalizeMediaFallsBackToURL(t *testing.T) {
	raw := `{
	  "rest_id": "9",
	  "legacy": {
	    "id_str": "9",
	    "full_text": "with media",
	    "entities": {"media": [
	      {"media_url_https": "https://pbs.example/a.jpg"},
	      {"url": "https://t.example/b"},
	      {}
	    ]}
	  },
	  "core": {"user_results": {"result": {"legacy": {"screen_name": "x", "name": "X"}}}}
	}`
	tw, ok := decodeTweetResult(t, raw).normalize()
	require.True(t, ok)
	assert.Equal(t, []string{"https://pbs.example/a.jpg", "https://t.example/b"}, tw.MediaURLs)
}

func TestTimelineWalkIgnoresOtherInstructions(t *testing.T) {
	var resp timelineResponse
	raw := `{"data":{"user":{"result":{"timeline_v2":{"timeline":{"instructions":[
	  {"type":"TimelinePinEntry"},
	  {"type":"TimelineAddEntries","entries":[
	    {"content":{"entryType":"TimelineTimelineModule"}},
	    {"content":{"entryType":"TimelineTimelineItem","itemContent":{"tweet_results":{}}}}
	  ]}
	]}}}}}}`
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	assert.Empty(t, resp.tweets())
}
