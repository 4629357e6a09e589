package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/config"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/models"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrFileTooLarge       = errors.New("file exceeds the size limit")
	ErrUnsupportedFile    = errors.New("unsupported file type")
	ErrMediaAssetNotFound = errors.New("media asset not found")
)

// MediaService validates and stores uploaded images through the configured
// storage backend and records a MediaAsset row per upload.
type MediaService struct {
	db    *gorm.DB
	store storage.Storage
	cfg   *config.StorageConfig
}

func NewMediaService(db *gorm.DB, store storage.Storage, cfg *config.StorageConfig) *MediaService {
	return &MediaService{db: db, store: store, cfg: cfg}
}

type UploadInput struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
	Public      bool
	UploadedBy  uuid.UUID
}

func (s *MediaService) Upload(ctx context.Context, in *UploadInput) (*models.MediaAsset, error) {
	maxBytes := int64(s.cfg.MaxFileSizeMB) * 1024 * 1024
	if maxBytes > 0 && in.Size > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d MB", ErrFileTooLarge, in.Size, s.cfg.MaxFileSizeMB)
	}
	if !s.allowedType(in.ContentType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, in.ContentType)
	}

	visibility := storage.VisibilityPublic
	if !in.Public {
		visibility = storage.VisibilityPrivate
	}

	// Object names are uuid-prefixed so uploads can never collide or
	// overwrite each other.
	ext := strings.ToLower(filepath.Ext(in.FileName))
	objectName := uuid.NewString() + ext

	stored, err := s.store.Put(ctx, &storage.Blob{
		Name:        objectName,
		Visibility:  visibility,
		ContentType: in.ContentType,
		Size:        in.Size,
		Reader:      in.Reader,
	})
	if err != nil {
		return nil, err
	}

	asset := &models.MediaAsset{
		FileName:    in.FileName,
		Path:        stored.Path,
		URL:         stored.URL,
		ContentType: in.ContentType,
		Size:        in.Size,
		Public:      in.Public,
		UploadedBy:  in.UploadedBy,
	}
	if err := s.db.Create(asset).Error; err != nil {
		// The blob is already written; remove it rather than leaking it.
		_ = s.store.Remove(ctx, stored)
		return nil, err
	}
	return asset, nil
}

func (s *MediaService) List(limit, offset int) ([]models.MediaAsset, int64, error) {
	var assets []models.MediaAsset
	var count int64

	if err := s.db.Model(&models.MediaAsset{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := s.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&assets).Error; err != nil {
		return nil, 0, err
	}
	return assets, count, nil
}

func (s *MediaService) Delete(ctx context.Context, id uuid.UUID) error {
	var asset models.MediaAsset
	if err := s.db.First(&asset, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMediaAssetNotFound
		}
		return err
	}

	visibility := storage.VisibilityPublic
	if !asset.Public {
		visibility = storage.VisibilityPrivate
	}
	loc := &storage.StoredBlob{Visibility: visibility, Path: asset.Path, URL: asset.URL}
	if err := s.store.Remove(ctx, loc); err != nil {
		return err
	}
	return s.db.Delete(&asset).Error
}

func (s *MediaService) allowedType(contentType string) bool {
	if len(s.cfg.AllowedMimeTypes) == 0 {
		return true
	}
	for _, allowed := range s.cfg.AllowedMimeTypes {
		if strings.EqualFold(allowed, contentType) {
			return true
		}
	}
	return false
}
