package services_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/models"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/services"
)

func TestSlideCreateInactiveStaysHidden(t *testing.T) {
	db := newContentDB(t)
	svc := services.NewSlideshowService(db)

	slide, err := svc.Create(&services.SlideInput{
		Title:    "Harvest 2026",
		ImageURL: "/media/harvest.jpg",
		Active:   false,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// The stored row must be inactive, not flipped by a column default.
	var stored models.Slide
	if err := db.First(&stored, "id = ?", slide.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.Active {
		t.Fatal("slide created inactive was stored active")
	}

	visible, err := svc.List(false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(visible) != 0 {
		t.Fatalf("inactive slide must not appear publicly, got %d", len(visible))
	}

	all, err := svc.List(true)
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if len(all) != 1 || all[0].Active {
		t.Fatalf("admin list should show the inactive slide, got %+v", all)
	}
}

func TestSlideValidation(t *testing.T) {
	db := newContentDB(t)
	svc := services.NewSlideshowService(db)

	if _, err := svc.Create(&services.SlideInput{ImageURL: "/media/x.jpg"}); !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("missing title must be rejected, got %v", err)
	}
	if _, err := svc.Create(&services.SlideInput{Title: "No image"}); !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("missing image must be rejected, got %v", err)
	}
}

func TestSlideListOrdersBySortOrder(t *testing.T) {
	db := newContentDB(t)
	svc := services.NewSlideshowService(db)

	for i, title := range []string{"third", "first", "second"} {
		order := []int{3, 1, 2}[i]
		if _, err := svc.Create(&services.SlideInput{
			Title:     title,
			ImageURL:  "/media/" + title + ".jpg",
			SortOrder: order,
			Active:    true,
		}); err != nil {
			t.Fatalf("create %q failed: %v", title, err)
		}
	}

	slides, err := svc.List(false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(slides) != 3 {
		t.Fatalf("expected 3 slides, got %d", len(slides))
	}
	for i, want := range []string{"first", "second", "third"} {
		if slides[i].Title != want {
			t.Fatalf("slide %d = %q, want %q", i, slides[i].Title, want)
		}
	}
}

func TestSlideUpdateDeactivates(t *testing.T) {
	db := newContentDB(t)
	svc := services.NewSlideshowService(db)

	slide, err := svc.Create(&services.SlideInput{Title: "Cocoa pods", ImageURL: "/media/pods.jpg", Active: true})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(slide.ID, &services.SlideInput{
		Title:    "Cocoa pods",
		ImageURL: "/media/pods.jpg",
		Active:   false,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Active {
		t.Fatal("update must deactivate the slide")
	}

	var stored models.Slide
	if err := db.First(&stored, "id = ?", slide.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.Active {
		t.Fatal("deactivation was not persisted")
	}
}

func TestSlideDeleteUnknown(t *testing.T) {
	db := newContentDB(t)
	svc := services.NewSlideshowService(db)

	if err := svc.Delete(uuid.New()); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("deleting an unknown slide must report not found, got %v", err)
	}
}
