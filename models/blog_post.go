package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// BlogPost is an authored blog entry. Unpublished posts are drafts visible
// only through admin tooling.
type BlogPost struct {
	ID         string         `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	Title      string         `gorm:"size:255;not null" json:"title"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	Summary    string         `gorm:"type:text" json:"summary"`
	CoverImage string         `gorm:"size:512" json:"cover_image"`
	Tags       pq.StringArray `gorm:"type:text[]" json:"tags"`
	Published  bool           `gorm:"not null;default:false;index" json:"published"`
}

func (b *BlogPost) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
