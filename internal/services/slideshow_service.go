package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SlideshowService struct {
	db *gorm.DB
}

func NewSlideshowService(db *gorm.DB) *SlideshowService {
	return &SlideshowService{db: db}
}

type SlideInput struct {
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	ImageURL  string `json:"image_url"`
	LinkURL   string `json:"link_url"`
	SortOrder int    `json:"sort_order"`
	Active    bool   `json:"active"`
}

func (in *SlideInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.ImageURL) == "" {
		return fmt.Errorf("%w: image_url is required", ErrInvalidInput)
	}
	return nil
}

func (s *SlideshowService) List(includeInactive bool) ([]models.Slide, error) {
	var slides []models.Slide
	q := s.db.Order("sort_order ASC")
	if !includeInactive {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&slides).Error; err != nil {
		return nil, err
	}
	return slides, nil
}

func (s *SlideshowService) Create(in *SlideInput) (*models.Slide, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	slide := &models.Slide{
		Title:     in.Title,
		Subtitle:  in.Subtitle,
		ImageURL:  in.ImageURL,
		LinkURL:   in.LinkURL,
		SortOrder: in.SortOrder,
		Active:    in.Active,
	}
	if err := s.db.Create(slide).Error; err != nil {
		return nil, err
	}
	return slide, nil
}

func (s *SlideshowService) Update(id uuid.UUID, in *SlideInput) (*models.Slide, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var slide models.Slide
	if err := s.db.First(&slide, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	slide.Title = in.Title
	slide.Subtitle = in.Subtitle
	slide.ImageURL = in.ImageURL
	slide.LinkURL = in.LinkURL
	slide.SortOrder = in.SortOrder
	slide.Active = in.Active

	if err := s.db.Save(&slide).Error; err != nil {
		return nil, err
	}
	return &slide, nil
}

func (s *SlideshowService) Delete(id uuid.UUID) error {
	res := s.db.Delete(&models.Slide{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
