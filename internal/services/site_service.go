package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SiteService covers the site-wide singletons: contact info, settings and
// section-visibility toggles.
type SiteService struct {
	db *gorm.DB
}

func NewSiteService(db *gorm.DB) *SiteService {
	return &SiteService{db: db}
}

const contactInfoID = 1

func (s *SiteService) GetContactInfo() (*models.ContactInfo, error) {
	var info models.ContactInfo
	if err := s.db.First(&info, "id = ?", contactInfoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.ContactInfo{ID: contactInfoID}, nil
		}
		return nil, err
	}
	return &info, nil
}

func (s *SiteService) UpdateContactInfo(info *models.ContactInfo) (*models.ContactInfo, error) {
	info.ID = contactInfoID
	if err := s.db.Save(info).Error; err != nil {
		return nil, err
	}
	return info, nil
}

func (s *SiteService) ListSettings() ([]models.Setting, error) {
	var settings []models.Setting
	if err := s.db.Order("key ASC").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// UpsertSetting writes a key/value pair, inserting or overwriting by key.
func (s *SiteService) UpsertSetting(key, value string) (*models.Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("%w: key is required", ErrInvalidInput)
	}

	setting := &models.Setting{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(setting).Error
	if err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *SiteService) DeleteSetting(key string) error {
	res := s.db.Delete(&models.Setting{}, "key = ?", key)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SiteService) ListSections() ([]models.SectionVisibility, error) {
	var sections []models.SectionVisibility
	if err := s.db.Order("section ASC").Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

// SetSectionVisible toggles a section, creating the row on first use.
func (s *SiteService) SetSectionVisible(section string, visible bool) (*models.SectionVisibility, error) {
	section = strings.TrimSpace(section)
	if section == "" {
		return nil, fmt.Errorf("%w: section is required", ErrInvalidInput)
	}

	row := &models.SectionVisibility{Section: section, Visible: visible}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "section"}},
		DoUpdates: clause.AssignmentColumns([]string{"visible", "updated_at"}),
	}).Create(row).Error
	if err != nil {
		return nil, err
	}
	return row, nil
}
