package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Showcase items: awards, certifications and quality badges share the same
// shape apart from their date semantics.

type Award struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title     string    `gorm:"size:160;not null" json:"title"`
	Issuer    string    `gorm:"size:128" json:"issuer"`
	Year      int       `json:"year"`
	ImageURL  string    `gorm:"size:512" json:"image_url"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	Published bool      `gorm:"not null;default:false;index" json:"published"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Award) TableName() string { return "awards" }

func (a *Award) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type Certification struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Title      string     `gorm:"size:160;not null" json:"title"`
	Issuer     string     `gorm:"size:128" json:"issuer"`
	ValidUntil *time.Time `json:"valid_until"`
	ImageURL   string     `gorm:"size:512" json:"image_url"`
	SortOrder  int        `gorm:"not null;default:0" json:"sort_order"`
	Published  bool       `gorm:"not null;default:false;index" json:"published"`
	CreatedAt  time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (Certification) TableName() string { return "certifications" }

func (c *Certification) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type QualityBadge struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title     string    `gorm:"size:160;not null" json:"title"`
	Issuer    string    `gorm:"size:128" json:"issuer"`
	ImageURL  string    `gorm:"size:512" json:"image_url"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	Published bool      `gorm:"not null;default:false;index" json:"published"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (QualityBadge) TableName() string { return "quality_badges" }

func (b *QualityBadge) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
