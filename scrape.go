package main

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"aihub/models"
	"aihub/pkg/twitterapi"
)

// defaultScrapeCount is how many recent tweets one scrape run fetches.
const defaultScrapeCount = 40

// tweetSource is the upstream the pipeline fetches from. Satisfied by
// *twitterapi.Client; tests substitute a fake.
type tweetSource interface {
	UserTweets(ctx context.Context, username string, count int) ([]twitterapi.Tweet, error)
}

// scrapeResult counts one run of the ingestion pipeline.
type scrapeResult struct {
	Total    int `json:"total"`
	Filtered int `json:"filtered"`
	Saved    int `json:"saved"`
	Skipped  int `json:"skipped"`
}

// runScrape is the one-shot ingestion pipeline: load thresholds, fetch the
// account's recent tweets, filter by engagement, then dedupe and persist.
//
// Failures before the fetch completes abort the whole run. Failures while
// saving an individual tweet are logged and swallowed; the loop moves on and
// the tweet is simply not counted as saved.
func runScrape(ctx context.Context, src tweetSource, st Store, username string, count int) (scrapeResult, error) {
	var res scrapeResult

	th, err := st.Thresholds()
	if err != nil {
		return res, err
	}
	if th == nil {
		th = defaultThresholds()
	}

	tweets, err := src.UserTweets(ctx, username, count)
	if err != nil {
		if errors.Is(err, twitterapi.ErrUserNotFound) {
			return res, errAccountNotFound
		}
		return res, err
	}
	res.Total = len(tweets)

	passed := filterTweets(tweets, th)
	res.Filtered = len(passed)

	for _, tw := range passed {
		exists, err := st.TweetExists(tw.TweetID)
		if err != nil {
			logger.Warn("tweet existence check failed",
				zap.String("tweet_id", tw.TweetID), zap.Error(err))
			continue
		}
		if exists {
			// no refresh of engagement counts on re-scrape
			res.Skipped++
			continue
		}
		post := toTwitterPost(tw)
		if err := st.CreateTwitterPost(post); err != nil {
			if isUniqueConstraintError(err) {
				// lost the check-then-insert race; the row is there
				res.Skipped++
			} else {
				logger.Warn("saving tweet failed",
					zap.String("tweet_id", tw.TweetID), zap.Error(err))
			}
			continue
		}
		res.Saved++
	}
	return res, nil
}

// filterTweets applies the engagement thresholds. A disabled configuration
// passes everything. The bookmark minimum is only enforced when configured
// above 0, unlike the other three which apply even at 0 — observed upstream
// behavior, kept as is.
func filterTweets(tweets []twitterapi.Tweet, th *models.TwitterThreshold) []twitterapi.Tweet {
	if !th.IsActive {
		return tweets
	}
	out := make([]twitterapi.Tweet, 0, len(tweets))
	for _, tw := range tweets {
		if tw.LikesCount < th.MinLikes {
			continue
		}
		if tw.RetweetsCount < th.MinRetweets {
			continue
		}
		if tw.RepliesCount < th.MinReplies {
			continue
		}
		if th.MinBookmarks > 0 {
			bookmarks := 0
			if tw.BookmarksCount != nil {
				bookmarks = *tw.BookmarksCount
			}
			if bookmarks < th.MinBookmarks {
				continue
			}
		}
		out = append(out, tw)
	}
	return out
}

func defaultThresholds() *models.TwitterThreshold {
	return &models.TwitterThreshold{
		ID:           models.ThresholdID,
		MinLikes:     100,
		MinRetweets:  50,
		MinReplies:   20,
		MinBookmarks: 0,
		IsActive:     true,
	}
}

func toTwitterPost(tw twitterapi.Tweet) *models.TwitterPost {
	return &models.TwitterPost{
		TweetID:        tw.TweetID,
		AuthorHandle:   tw.AuthorHandle,
		AuthorName:     tw.AuthorName,
		AuthorAvatar:   tw.AuthorAvatar,
		Content:        tw.Content,
		MediaURLs:      pq.StringArray(tw.MediaURLs),
		LikesCount:     tw.LikesCount,
		RetweetsCount:  tw.RetweetsCount,
		RepliesCount:   tw.RepliesCount,
		BookmarksCount: tw.BookmarksCount,
		PostedAt:       tw.PostedAt,
		SourceAccount:  tw.SourceAccount,
		IsPublished:    true,
	}
}
