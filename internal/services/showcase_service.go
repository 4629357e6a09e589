package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShowcaseService manages awards, certifications and quality badges. The three
// kinds share the same shape, so one service covers them.
type ShowcaseService struct {
	db *gorm.DB
}

func NewShowcaseService(db *gorm.DB) *ShowcaseService {
	return &ShowcaseService{db: db}
}

type ShowcaseInput struct {
	Title      string     `json:"title"`
	Issuer     string     `json:"issuer"`
	Year       int        `json:"year"`
	ValidUntil *time.Time `json:"valid_until"`
	ImageURL   string     `json:"image_url"`
	SortOrder  int        `json:"sort_order"`
	Published  bool       `json:"published"`
}

func (in *ShowcaseInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	return nil
}

// --- Awards ---

func (s *ShowcaseService) ListAwards(includeUnpublished bool) ([]models.Award, error) {
	var items []models.Award
	q := s.db.Order("sort_order ASC, year DESC")
	if !includeUnpublished {
		q = q.Where("published = ?", true)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *ShowcaseService) CreateAward(in *ShowcaseInput) (*models.Award, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	item := &models.Award{
		Title:     in.Title,
		Issuer:    in.Issuer,
		Year:      in.Year,
		ImageURL:  in.ImageURL,
		SortOrder: in.SortOrder,
		Published: in.Published,
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ShowcaseService) UpdateAward(id uuid.UUID, in *ShowcaseInput) (*models.Award, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var item models.Award
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	item.Title = in.Title
	item.Issuer = in.Issuer
	item.Year = in.Year
	item.ImageURL = in.ImageURL
	item.SortOrder = in.SortOrder
	item.Published = in.Published
	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *ShowcaseService) DeleteAward(id uuid.UUID) error {
	return deleteByID(s.db, &models.Award{}, id)
}

// --- Certifications ---

func (s *ShowcaseService) ListCertifications(includeUnpublished bool) ([]models.Certification, error) {
	var items []models.Certification
	q := s.db.Order("sort_order ASC")
	if !includeUnpublished {
		q = q.Where("published = ?", true)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *ShowcaseService) CreateCertification(in *ShowcaseInput) (*models.Certification, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	item := &models.Certification{
		Title:      in.Title,
		Issuer:     in.Issuer,
		ValidUntil: in.ValidUntil,
		ImageURL:   in.ImageURL,
		SortOrder:  in.SortOrder,
		Published:  in.Published,
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ShowcaseService) UpdateCertification(id uuid.UUID, in *ShowcaseInput) (*models.Certification, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var item models.Certification
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	item.Title = in.Title
	item.Issuer = in.Issuer
	item.ValidUntil = in.ValidUntil
	item.ImageURL = in.ImageURL
	item.SortOrder = in.SortOrder
	item.Published = in.Published
	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *ShowcaseService) DeleteCertification(id uuid.UUID) error {
	return deleteByID(s.db, &models.Certification{}, id)
}

// --- Quality badges ---

func (s *ShowcaseService) ListBadges(includeUnpublished bool) ([]models.QualityBadge, error) {
	var items []models.QualityBadge
	q := s.db.Order("sort_order ASC")
	if !includeUnpublished {
		q = q.Where("published = ?", true)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *ShowcaseService) CreateBadge(in *ShowcaseInput) (*models.QualityBadge, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	item := &models.QualityBadge{
		Title:     in.Title,
		Issuer:    in.Issuer,
		ImageURL:  in.ImageURL,
		SortOrder: in.SortOrder,
		Published: in.Published,
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ShowcaseService) UpdateBadge(id uuid.UUID, in *ShowcaseInput) (*models.QualityBadge, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var item models.QualityBadge
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	item.Title = in.Title
	item.Issuer = in.Issuer
	item.ImageURL = in.ImageURL
	item.SortOrder = in.SortOrder
	item.Published = in.Published
	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *ShowcaseService) DeleteBadge(id uuid.UUID) error {
	return deleteByID(s.db, &models.QualityBadge{}, id)
}

func deleteByID(db *gorm.DB, model interface{}, id uuid.UUID) error {
	res := db.Delete(model, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
