package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Testimonial struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Author    string    `gorm:"size:128;not null" json:"author"`
	Company   string    `gorm:"size:128" json:"company"`
	Country   string    `gorm:"size:64" json:"country"`
	Quote     string    `gorm:"type:text;not null" json:"quote"`
	Rating    int       `gorm:"not null;default:5" json:"rating"`
	ImageURL  string    `gorm:"size:512" json:"image_url"`
	Published bool      `gorm:"not null;default:false;index" json:"published"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Testimonial) TableName() string {
	return "testimonials"
}

func (t *Testimonial) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
