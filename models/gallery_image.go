package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GalleryImage is one entry of the AI image gallery. Only the URL is stored;
// the image itself is hosted elsewhere.
type GalleryImage struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	ImageURL  string         `gorm:"size:512;not null" json:"image_url"`
	Prompt    string         `gorm:"type:text" json:"prompt"`
	ModelInfo string         `gorm:"size:255" json:"model_info"`
	Tags      pq.StringArray `gorm:"type:text[]" json:"tags"`
	SortOrder int            `gorm:"not null;default:0;index" json:"sort_order"`
}

func (g *GalleryImage) BeforeCreate(*gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
