package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/config"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/services"
)

func newPreviewService(secret, expiry string) *services.PreviewService {
	return services.NewPreviewService(&config.Config{
		Preview: config.PreviewConfig{Secret: secret, Expiry: expiry},
	})
}

func TestPreviewTokenRoundTrip(t *testing.T) {
	svc := newPreviewService("preview-secret-for-tests", "1h")
	productID := uuid.New()

	token, err := svc.GenerateToken(productID)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	got, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if got != productID {
		t.Fatalf("token resolved to %v, want %v", got, productID)
	}
}

func TestPreviewTokenExpired(t *testing.T) {
	const secret = "preview-secret-for-tests"
	svc := newPreviewService(secret, "1h")

	// Sign a token whose lifetime already ended, with the same secret the
	// service verifies against.
	productID := uuid.New()
	now := time.Now().UTC()
	claims := services.PreviewClaims{
		ProductID: productID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   productID.String(),
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if _, err := svc.ValidateToken(token); !errors.Is(err, services.ErrInvalidPreviewToken) {
		t.Fatalf("expired token must be rejected, got %v", err)
	}
}

func TestPreviewTokenWrongSecret(t *testing.T) {
	issuer := newPreviewService("secret-one", "1h")
	verifier := newPreviewService("secret-two", "1h")

	token, err := issuer.GenerateToken(uuid.New())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := verifier.ValidateToken(token); !errors.Is(err, services.ErrInvalidPreviewToken) {
		t.Fatalf("token signed with a different secret must be rejected, got %v", err)
	}
}

func TestPreviewTokenGarbage(t *testing.T) {
	svc := newPreviewService("preview-secret-for-tests", "1h")
	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.ValidateToken(token); !errors.Is(err, services.ErrInvalidPreviewToken) {
			t.Errorf("ValidateToken(%q): expected ErrInvalidPreviewToken, got %v", token, err)
		}
	}
}
