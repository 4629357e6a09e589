package services_test

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/models"
)

// newContentDB opens an in-memory database with the content schema for
// service tests that exercise real queries.
func newContentDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache DB keeps gorm's pooled connections on the same
	// schema while isolating tests from each other.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.Product{},
		&models.Testimonial{},
		&models.Slide{},
		&models.Award{},
		&models.Certification{},
		&models.QualityBadge{},
		&models.ContactInfo{},
		&models.Setting{},
		&models.SectionVisibility{},
		&models.QuotationRequest{},
		&models.MediaAsset{},
	)
	if err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}
