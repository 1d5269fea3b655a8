package models

import "time"

// ThresholdID is the well-known key of the single threshold configuration row.
const ThresholdID = "default"

// TwitterThreshold is the singleton engagement-minimums configuration applied
// to every scrape run. When IsActive is false all fetched tweets pass.
type TwitterThreshold struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"updated_at"`
	MinLikes     int       `gorm:"not null;default:0" json:"min_likes"`
	MinRetweets  int       `gorm:"not null;default:0" json:"min_retweets"`
	MinReplies   int       `gorm:"not null;default:0" json:"min_replies"`
	MinBookmarks int       `gorm:"not null;default:0" json:"min_bookmarks"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
}
