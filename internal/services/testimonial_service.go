package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TestimonialService struct {
	db *gorm.DB
}

func NewTestimonialService(db *gorm.DB) *TestimonialService {
	return &TestimonialService{db: db}
}

type TestimonialInput struct {
	Author    string `json:"author"`
	Company   string `json:"company"`
	Country   string `json:"country"`
	Quote     string `json:"quote"`
	Rating    int    `json:"rating"`
	ImageURL  string `json:"image_url"`
	Published bool   `json:"published"`
}

func (in *TestimonialInput) validate() error {
	if strings.TrimSpace(in.Author) == "" {
		return fmt.Errorf("%w: author is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Quote) == "" {
		return fmt.Errorf("%w: quote is required", ErrInvalidInput)
	}
	if in.Rating < 1 || in.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}
	return nil
}

func (s *TestimonialService) List(includeUnpublished bool) ([]models.Testimonial, error) {
	var items []models.Testimonial
	q := s.db.Order("created_at DESC")
	if !includeUnpublished {
		q = q.Where("published = ?", true)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *TestimonialService) Create(in *TestimonialInput) (*models.Testimonial, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	item := &models.Testimonial{
		Author:    in.Author,
		Company:   in.Company,
		Country:   in.Country,
		Quote:     in.Quote,
		Rating:    in.Rating,
		ImageURL:  in.ImageURL,
		Published: in.Published,
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *TestimonialService) Update(id uuid.UUID, in *TestimonialInput) (*models.Testimonial, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var item models.Testimonial
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	item.Author = in.Author
	item.Company = in.Company
	item.Country = in.Country
	item.Quote = in.Quote
	item.Rating = in.Rating
	item.ImageURL = in.ImageURL
	item.Published = in.Published

	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *TestimonialService) Delete(id uuid.UUID) error {
	res := s.db.Delete(&models.Testimonial{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
