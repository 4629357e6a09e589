package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuotationStatus string

const (
	QuotationNew      QuotationStatus = "new"
	QuotationReviewed QuotationStatus = "reviewed"
	QuotationAnswered QuotationStatus = "answered"
)

// QuotationRequest is submitted unauthenticated from the public site.
type QuotationRequest struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Company         string          `gorm:"size:128" json:"company"`
	ContactName     string          `gorm:"size:128;not null" json:"contact_name"`
	Email           string          `gorm:"size:128;not null" json:"email"`
	Country         string          `gorm:"size:64" json:"country"`
	ProductInterest string          `gorm:"size:160" json:"product_interest"`
	QuantityKg      *float64        `json:"quantity_kg"`
	Message         string          `gorm:"type:text" json:"message"`
	Status          QuotationStatus `gorm:"size:16;not null;default:'new';index" json:"status"`
	CreatedAt       time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (QuotationRequest) TableName() string {
	return "quotation_requests"
}

func (q *QuotationRequest) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
