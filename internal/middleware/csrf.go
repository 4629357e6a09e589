package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/services"
)

// CSRFHeader is the request header mutating admin calls must carry.
const CSRFHeader = "X-CSRF-Token"

// RequireCSRF rejects state-changing requests whose X-CSRF-Token header does
// not match the session's token. Safe methods pass through. Must run after
// SessionAuth, which put the session's token into the request context.
func RequireCSRF(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		storedVal, exists := c.Get(ContextSessionCSRF)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Authentication required",
			})
			return
		}
		stored, ok := storedVal.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal Server Error",
				"message": "Invalid session context",
			})
			return
		}

		if err := auth.ValidateCSRF(stored, c.GetHeader(CSRFHeader)); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "Forbidden",
				"message": "Missing or invalid CSRF token",
			})
			return
		}
		c.Next()
	}
}
