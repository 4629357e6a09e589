package bootstrap

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/config"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/models"
)

// defaultSections are the toggleable blocks the marketing site renders.
var defaultSections = []string{
	"slideshow",
	"products",
	"testimonials",
	"awards",
	"certifications",
	"badges",
	"contact",
	"quotation_form",
}

// Run seeds the rows the application cannot operate without: the first admin
// account, the contact-info singleton and one visibility row per site section.
// Every step is idempotent so restarts are safe.
func Run(db *gorm.DB, cfg *config.BootstrapConfig) error {
	if err := ensureAdminExists(db, cfg); err != nil {
		return err
	}
	ensureContactInfoExists(db)
	ensureSectionsExist(db)
	return nil
}

func ensureAdminExists(db *gorm.DB, cfg *config.BootstrapConfig) error {
	var count int64
	if err := db.Model(&models.AdminUser{}).Count(&count).Error; err != nil {
		return fmt.Errorf("bootstrap: counting admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return fmt.Errorf("bootstrap: no admin accounts exist and bootstrap credentials are not configured")
	}
	if len(cfg.AdminPassword) < 8 {
		return fmt.Errorf("bootstrap: admin password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), 12)
	if err != nil {
		return fmt.Errorf("bootstrap: hashing admin password: %w", err)
	}

	admin := models.AdminUser{
		Username:     cfg.AdminUsername,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("bootstrap: creating admin: %w", err)
	}
	log.Printf("Bootstrap: created initial admin account %q", cfg.AdminUsername)
	return nil
}

func ensureContactInfoExists(db *gorm.DB) {
	var count int64
	db.Model(&models.ContactInfo{}).Where("id = ?", 1).Count(&count)
	if count == 0 {
		db.Create(&models.ContactInfo{ID: 1})
	}
}

func ensureSectionsExist(db *gorm.DB) {
	for _, section := range defaultSections {
		var count int64
		db.Model(&models.SectionVisibility{}).Where("section = ?", section).Count(&count)
		if count == 0 {
			db.Create(&models.SectionVisibility{Section: section, Visible: true})
		}
	}
}
