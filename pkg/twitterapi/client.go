// Package twitterapi is a client for a twitter241-style RapidAPI gateway.
// It resolves usernames to account ids, fetches recent timeline tweets and
// normalizes them into the flat Tweet shape the rest of the service uses.
package twitterapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the hosted gateway used when none is configured.
const DefaultBaseURL = "https://twitter241.p.rapidapi.com"

// Tweet is a normalized timeline entry.
type Tweet struct {
	TweetID        string
	AuthorHandle   string
	AuthorName     string
	AuthorAvatar   string
	Content        string
	MediaURLs      []string
	LikesCount     int
	RetweetsCount  int
	RepliesCount   int
	BookmarksCount *int // nil when the gateway omits it
	PostedAt       time.Time
	SourceAccount  string
}

// Client talks to the gateway. The zero value is not usable; construct with New.
type Client struct {
	baseURL    string
	host       string
	apiKey     string
	httpClient *http.Client
}

// New builds a Client for the given gateway base URL and RapidAPI key.
// An empty baseURL selects DefaultBaseURL.
func New(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	host := ""
	if u, err := url.Parse(baseURL); err == nil {
		host = u.Host
	}
	return &Client{
		baseURL:    baseURL,
		host:       host,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("twitterapi: build request: %w", err)
	}
	req.Header.Set("x-rapidapi-host", c.host)
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("twitterapi: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("twitterapi: decode %s: %w", endpoint, err)
	}
	return nil
}

// LookupUserID resolves a username (without the @) to the account's rest_id.
func (c *Client) LookupUserID(ctx context.Context, username string) (string, error) {
	var raw struct {
		Data struct {
			RestID string `json:"rest_id"`
		} `json:"data"`
	}
	params := url.Values{"username": {username}}
	if err := c.get(ctx, "/user-by-username", params, &raw); err != nil {
		return "", err
	}
	if raw.Data.RestID == "" {
		return "", ErrUserNotFound
	}
	return raw.Data.RestID, nil
}

// UserTweets fetches up to count recent tweets for the given username.
// Timeline entries that cannot be normalized are dropped, not an error.
func (c *Client) UserTweets(ctx context.Context, username string, count int) ([]Tweet, error) {
	userID, err := c.LookupUserID(ctx, username)
	if err != nil {
		return nil, err
	}
	var raw timelineResponse
	params := url.Values{
		"user":  {userID},
		"count": {fmt.Sprintf("%d", count)},
	}
	if err := c.get(ctx, "/user-tweets", params, &raw); err != nil {
		return nil, err
	}
	return raw.tweets(), nil
}
