package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidInput = errors.New("invalid input")
)

// CatalogService manages the product catalog.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

type ProductInput struct {
	Name         string                 `json:"name"`
	Slug         string                 `json:"slug"`
	Category     models.ProductCategory `json:"category"`
	Origin       string                 `json:"origin"`
	Description  string                 `json:"description"`
	TastingNotes string                 `json:"tasting_notes"`
	PricePerKg   *float64               `json:"price_per_kg"`
	ImageURL     string                 `json:"image_url"`
	SortOrder    int                    `json:"sort_order"`
}

func (in *ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Category != models.CategoryCoffee && in.Category != models.CategoryCocoa {
		return fmt.Errorf("%w: category must be coffee or cocoa", ErrInvalidInput)
	}
	return nil
}

func (s *CatalogService) List(includeUnpublished bool) ([]models.Product, error) {
	var products []models.Product
	q := s.db.Order("sort_order ASC, created_at DESC")
	if !includeUnpublished {
		q = q.Where("published = ?", true)
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *CatalogService) GetByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *CatalogService) GetPublishedBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := s.db.First(&product, "slug = ? AND published = ?", slug, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *CatalogService) Create(in *ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	slug := in.Slug
	if slug == "" {
		slug = Slugify(in.Name)
	}

	var count int64
	if err := s.db.Model(&models.Product{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: slug %q already in use", ErrInvalidInput, slug)
	}

	product := &models.Product{
		Name:         in.Name,
		Slug:         slug,
		Category:     in.Category,
		Origin:       in.Origin,
		Description:  in.Description,
		TastingNotes: in.TastingNotes,
		PricePerKg:   in.PricePerKg,
		ImageURL:     in.ImageURL,
		SortOrder:    in.SortOrder,
	}
	if err := s.db.Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) Update(id uuid.UUID, in *ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	if in.Slug != "" {
		product.Slug = in.Slug
	}
	product.Category = in.Category
	product.Origin = in.Origin
	product.Description = in.Description
	product.TastingNotes = in.TastingNotes
	product.PricePerKg = in.PricePerKg
	product.ImageURL = in.ImageURL
	product.SortOrder = in.SortOrder

	if err := s.db.Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) SetPublished(id uuid.UUID, published bool) error {
	res := s.db.Model(&models.Product{}).Where("id = ?", id).Update("published", published)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CatalogService) Delete(id uuid.UUID) error {
	res := s.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Slugify reduces a name to a URL-safe slug.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
