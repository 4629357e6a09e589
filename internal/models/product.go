package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategoryCoffee ProductCategory = "coffee"
	CategoryCocoa  ProductCategory = "cocoa"
)

type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name         string          `gorm:"size:128;not null" json:"name"`
	Slug         string          `gorm:"size:160;uniqueIndex;not null" json:"slug"`
	Category     ProductCategory `gorm:"size:16;not null;index" json:"category"`
	Origin       string          `gorm:"size:128" json:"origin"`
	Description  string          `gorm:"type:text" json:"description"`
	TastingNotes string          `gorm:"size:512" json:"tasting_notes"`
	PricePerKg   *float64        `json:"price_per_kg"`
	ImageURL     string          `gorm:"size:512" json:"image_url"`
	Published    bool            `gorm:"not null;default:false;index" json:"published"`
	SortOrder    int             `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt    time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
