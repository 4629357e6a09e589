package models

import "time"

// ContactInfo is a singleton row (ID fixed to 1).
type ContactInfo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:128" json:"email"`
	Phone     string    `gorm:"size:32" json:"phone"`
	Address   string    `gorm:"size:255" json:"address"`
	MapURL    string    `gorm:"size:512" json:"map_url"`
	Facebook  string    `gorm:"size:255" json:"facebook"`
	Instagram string    `gorm:"size:255" json:"instagram"`
	LinkedIn  string    `gorm:"size:255" json:"linkedin"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ContactInfo) TableName() string { return "contact_info" }

// Setting is a free-form key/value pair for site-wide options.
type Setting struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Key       string    `gorm:"size:64;uniqueIndex;not null" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string { return "settings" }

// SectionVisibility toggles whole sections of the marketing site on and off.
type SectionVisibility struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Section   string    `gorm:"size:64;uniqueIndex;not null" json:"section"`
	Visible   bool      `gorm:"not null" json:"visible"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SectionVisibility) TableName() string { return "section_visibility" }
