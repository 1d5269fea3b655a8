package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Practice types.
const (
	PracticeTypeLink    = "link"
	PracticeTypeArticle = "article"
)

// Practice is an admin-curated AI practice entry, either an external link or
// an inline article.
type Practice struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Type      string    `gorm:"size:16;not null" json:"type"`
	Content   string    `gorm:"type:text" json:"content"`
	SourceURL string    `gorm:"size:512" json:"source_url"`
	SortOrder int       `gorm:"not null;default:0;index" json:"sort_order"`
}

func (p *Practice) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
