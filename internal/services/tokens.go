package services

import (
	"crypto/rand"
	"encoding/base64"
)

// generateSecureToken returns a URL-safe random string with length bytes of
// entropy behind it.
func generateSecureToken(length int) string {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
