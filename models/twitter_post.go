package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// TwitterPost is a tweet ingested from the upstream source. TweetID is the
// source-assigned identifier and is unique: re-ingesting the same tweet must
// not create a second row.
type TwitterPost struct {
	ID             string         `gorm:"primaryKey;size:36" json:"id"`
	TweetID        string         `gorm:"size:64;not null;uniqueIndex" json:"tweet_id"`
	AuthorHandle   string         `gorm:"size:255;not null" json:"author_handle"`
	AuthorName     string         `gorm:"size:255" json:"author_name"`
	AuthorAvatar   string         `gorm:"size:512" json:"author_avatar"`
	Content        string         `gorm:"type:text" json:"content"`
	MediaURLs      pq.StringArray `gorm:"type:text[]" json:"media_urls"`
	LikesCount     int            `gorm:"not null;default:0" json:"likes_count"`
	RetweetsCount  int            `gorm:"not null;default:0" json:"retweets_count"`
	RepliesCount   int            `gorm:"not null;default:0" json:"replies_count"`
	BookmarksCount *int           `json:"bookmarks_count"` // nil when the source does not report it
	PostedAt       time.Time      `gorm:"index" json:"posted_at"`
	FetchedAt      time.Time      `gorm:"autoCreateTime" json:"fetched_at"`
	SourceAccount  string         `gorm:"size:255" json:"source_account"`
	IsPublished    bool           `gorm:"not null;default:true;index" json:"is_published"`
}

func (p *TwitterPost) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
