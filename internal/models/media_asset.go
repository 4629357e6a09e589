package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MediaAsset tracks an uploaded image and where the storage backend put it.
type MediaAsset struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FileName    string    `gorm:"size:255;not null" json:"file_name"`
	Path        string    `gorm:"size:512;not null" json:"path"`
	URL         string    `gorm:"size:512" json:"url"`
	ContentType string    `gorm:"size:128" json:"content_type"`
	Size        int64     `json:"size"`
	Public      bool      `gorm:"not null" json:"public"`
	UploadedBy  uuid.UUID `gorm:"type:uuid;index" json:"uploaded_by"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (MediaAsset) TableName() string {
	return "media_assets"
}

func (m *MediaAsset) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
