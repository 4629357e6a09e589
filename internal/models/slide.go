package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Slide is one entry of the homepage slideshow.
type Slide struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title     string    `gorm:"size:160;not null" json:"title"`
	Subtitle  string    `gorm:"size:255" json:"subtitle"`
	ImageURL  string    `gorm:"size:512;not null" json:"image_url"`
	LinkURL   string    `gorm:"size:512" json:"link_url"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	Active    bool      `gorm:"not null;index" json:"active"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Slide) TableName() string {
	return "slides"
}

func (s *Slide) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
