package twitterapi

import "time"

// createdAtLayout is the legacy twitter timestamp format
// ("Wed Oct 10 20:19:24 +0000 2018").
const createdAtLayout = time.RubyDate

// timelineResponse mirrors the slice of the user-tweets payload we care
// about: data.user.result.timeline_v2.timeline.instructions.
type timelineResponse struct {
	Data struct {
		User struct {
			Result struct {
				TimelineV2 struct {
					Timeline struct {
						Instructions []instruction `json:"instructions"`
					} `json:"timeline"`
				} `json:"timeline_v2"`
			} `json:"result"`
		} `json:"user"`
	} `json:"data"`
}

type instruction struct {
	Type    string  `json:"type"`
	Entries []entry `json:"entries"`
}

type entry struct {
	Content struct {
		EntryType   string `json:"entryType"`
		ItemContent struct {
			TweetResults struct {
				Result *tweetResult `json:"result"`
			} `json:"tweet_results"`
		} `json:"itemContent"`
	} `json:"content"`
}

type tweetResult struct {
	RestID string       `json:"rest_id"`
	Legacy *tweetLegacy `json:"legacy"`
	Core   *struct {
		UserResults struct {
			Result *struct {
				Legacy *userLegacy `json:"legacy"`
			} `json:"result"`
		} `json:"user_results"`
	} `json:"core"`
}

type tweetLegacy struct {
	IDStr         string `json:"id_str"`
	FullText      string `json:"full_text"`
	FavoriteCount int    `json:"favorite_count"`
	RetweetCount  int    `json:"retweet_count"`
	ReplyCount    int    `json:"reply_count"`
	BookmarkCount *int   `json:"bookmark_count"`
	CreatedAt     string `json:"created_at"`
	Entities      struct {
		Media []struct {
			MediaURLHTTPS string `json:"media_url_https"`
			URL           string `json:"url"`
		} `json:"media"`
	} `json:"entities"`
}

type userLegacy struct {
	ScreenName           string `json:"screen_name"`
	Name                 string `json:"name"`
	ProfileImageURLHTTPS string `json:"profile_image_url_https"`
}

// tweets walks the timeline instructions and normalizes every tweet item.
// Entries missing the nested legacy or core blocks are skipped.
func (r *timelineResponse) tweets() []Tweet {
	var out []Tweet
	for _, ins := range r.Data.User.Result.TimelineV2.Timeline.Instructions {
		if ins.Type != "TimelineAddEntries" {
			continue
		}
		for _, e := range ins.Entries {
			if e.Content.EntryType != "TimelineTimelineItem" {
				continue
			}
			res := e.Content.ItemContent.TweetResults.Result
			if res == nil {
				continue
			}
			if tw, ok := res.normalize(); ok {
				out = append(out, tw)
			}
		}
	}
	return out
}

func (r *tweetResult) normalize() (Tweet, bool) {
	if r.Legacy == nil || r.Core == nil || r.Core.UserResults.Result == nil || r.Core.UserResults.Result.Legacy == nil {
		return Tweet{}, false
	}
	leg := r.Legacy
	usr := r.Core.UserResults.Result.Legacy

	id := leg.IDStr
	if id == "" {
		id = r.RestID
	}
	if id == "" {
		return Tweet{}, false
	}

	var media []string
	for _, m := range leg.Entities.Media {
		if m.MediaURLHTTPS != "" {
			media = append(media, m.MediaURLHTTPS)
		} else if m.URL != "" {
			media = append(media, m.URL)
		}
	}

	postedAt := time.Now().UTC()
	if leg.CreatedAt != "" {
		if t, err := time.Parse(createdAtLayout, leg.CreatedAt); err == nil {
			postedAt = t.UTC()
		}
	}

	return Tweet{
		TweetID:        id,
		AuthorHandle:   usr.ScreenName,
		AuthorName:     usr.Name,
		AuthorAvatar:   usr.ProfileImageURLHTTPS,
		Content:        leg.FullText,
		MediaURLs:      media,
		LikesCount:     leg.FavoriteCount,
		RetweetsCount:  leg.RetweetCount,
		RepliesCount:   leg.ReplyCount,
		BookmarksCount: leg.BookmarkCount,
		PostedAt:       postedAt,
		SourceAccount:  usr.ScreenName,
	}, true
}
