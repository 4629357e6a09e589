package services

import (
	"errors"
	"time"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidPreviewToken = errors.New("invalid or expired preview token")

// PreviewClaims identify the single unpublished product a preview link grants
// access to.
type PreviewClaims struct {
	ProductID string `json:"product_id"`
	jwt.RegisteredClaims
}

// PreviewService signs short-lived tokens that let reviewers see unpublished
// catalog entries without an admin session.
type PreviewService struct {
	secret []byte
	expiry time.Duration
}

func NewPreviewService(cfg *config.Config) *PreviewService {
	expiry, err := cfg.Preview.GetExpiry()
	if err != nil || expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &PreviewService{
		secret: []byte(cfg.Preview.Secret),
		expiry: expiry,
	}
}

func (s *PreviewService) GenerateToken(productID uuid.UUID) (string, error) {
	now := time.Now().UTC()
	claims := PreviewClaims{
		ProductID: productID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   productID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken returns the product id a token grants access to.
func (s *PreviewService) ValidateToken(tokenStr string) (uuid.UUID, error) {
	claims := &PreviewClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidPreviewToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidPreviewToken
	}

	productID, err := uuid.Parse(claims.ProductID)
	if err != nil {
		return uuid.Nil, ErrInvalidPreviewToken
	}
	return productID, nil
}
