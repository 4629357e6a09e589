package services_test

import (
	"errors"
	"testing"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/models"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/services"
)

func TestContactInfoSingleton(t *testing.T) {
	db := newContentDB(t)
	site := services.NewSiteService(db)

	// Missing row reads as an empty block rather than an error.
	info, err := site.GetContactInfo()
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if info.Email != "" {
		t.Fatalf("expected empty contact info, got %+v", info)
	}

	updated, err := site.UpdateContactInfo(&models.ContactInfo{
		Email:   "sales@eastafricom.example",
		Phone:   "+256 700 000000",
		Address: "Kampala, Uganda",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ID != 1 {
		t.Fatalf("contact info must stay pinned to id 1, got %d", updated.ID)
	}

	// A second update overwrites the same row.
	if _, err := site.UpdateContactInfo(&models.ContactInfo{Email: "export@eastafricom.example"}); err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	info, err = site.GetContactInfo()
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if info.Email != "export@eastafricom.example" {
		t.Fatalf("expected overwritten email, got %q", info.Email)
	}
}

func TestSettingsUpsert(t *testing.T) {
	db := newContentDB(t)
	site := services.NewSiteService(db)

	if _, err := site.UpsertSetting("", "x"); !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("empty key must be rejected, got %v", err)
	}

	if _, err := site.UpsertSetting("hero_tagline", "From crop to cup"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if _, err := site.UpsertSetting("hero_tagline", "Farm to bar"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	settings, err := site.ListSettings()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(settings) != 1 {
		t.Fatalf("upsert must not duplicate keys, got %d rows", len(settings))
	}
	if settings[0].Value != "Farm to bar" {
		t.Fatalf("expected overwritten value, got %q", settings[0].Value)
	}
}

func TestDeleteSetting(t *testing.T) {
	db := newContentDB(t)
	site := services.NewSiteService(db)

	if _, err := site.UpsertSetting("maintenance_banner", "off"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := site.DeleteSetting("maintenance_banner"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := site.DeleteSetting("maintenance_banner"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("deleting twice must report not found, got %v", err)
	}
}

func TestSectionVisibilityToggle(t *testing.T) {
	db := newContentDB(t)
	site := services.NewSiteService(db)

	section, err := site.SetSectionVisible("testimonials", false)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if section.Visible {
		t.Fatal("section should be hidden")
	}

	// The very first write must persist false, not fall back to a default.
	var stored models.SectionVisibility
	if err := db.First(&stored, "section = ?", "testimonials").Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.Visible {
		t.Fatal("hidden section was stored as visible")
	}

	if _, err := site.SetSectionVisible("testimonials", true); err != nil {
		t.Fatalf("re-toggle failed: %v", err)
	}
	sections, err := site.ListSections()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(sections) != 1 {
		t.Fatalf("toggling must not duplicate rows, got %d", len(sections))
	}
	if !sections[0].Visible {
		t.Fatal("section should be visible again")
	}
}
