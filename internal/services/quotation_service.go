package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuotationService handles the public quotation-request intake and its admin
// review workflow.
type QuotationService struct {
	db *gorm.DB
}

func NewQuotationService(db *gorm.DB) *QuotationService {
	return &QuotationService{db: db}
}

type QuotationInput struct {
	Company         string   `json:"company"`
	ContactName     string   `json:"contact_name"`
	Email           string   `json:"email"`
	Country         string   `json:"country"`
	ProductInterest string   `json:"product_interest"`
	QuantityKg      *float64 `json:"quantity_kg"`
	Message         string   `json:"message"`
}

func (in *QuotationInput) validate() error {
	if strings.TrimSpace(in.ContactName) == "" {
		return fmt.Errorf("%w: contact_name is required", ErrInvalidInput)
	}
	email := strings.TrimSpace(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	if in.QuantityKg != nil && *in.QuantityKg <= 0 {
		return fmt.Errorf("%w: quantity_kg must be positive", ErrInvalidInput)
	}
	return nil
}

// Submit stores a request from the public site with status "new".
func (s *QuotationService) Submit(in *QuotationInput) (*models.QuotationRequest, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	request := &models.QuotationRequest{
		Company:         in.Company,
		ContactName:     in.ContactName,
		Email:           strings.TrimSpace(in.Email),
		Country:         in.Country,
		ProductInterest: in.ProductInterest,
		QuantityKg:      in.QuantityKg,
		Message:         in.Message,
		Status:          models.QuotationNew,
	}
	if err := s.db.Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

func (s *QuotationService) List(status models.QuotationStatus) ([]models.QuotationRequest, error) {
	var requests []models.QuotationRequest
	q := s.db.Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateStatus moves a request along new -> reviewed -> answered. Moving
// backwards is rejected.
func (s *QuotationService) UpdateStatus(id uuid.UUID, status models.QuotationStatus) (*models.QuotationRequest, error) {
	if rank(status) == 0 {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	var request models.QuotationRequest
	if err := s.db.First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if rank(status) < rank(request.Status) {
		return nil, fmt.Errorf("%w: cannot move %s back to %s", ErrInvalidInput, request.Status, status)
	}

	request.Status = status
	if err := s.db.Save(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (s *QuotationService) Delete(id uuid.UUID) error {
	res := s.db.Delete(&models.QuotationRequest{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func rank(status models.QuotationStatus) int {
	switch status {
	case models.QuotationNew:
		return 1
	case models.QuotationReviewed:
		return 2
	case models.QuotationAnswered:
		return 3
	default:
		return 0
	}
}
