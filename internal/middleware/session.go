package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/config"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/services"
)

const (
	ContextAdminID     = "adminID"
	ContextAdminName   = "adminUsername"
	ContextSessionID   = "sessionID"
	ContextSessionCSRF = "sessionCSRF"
)

// SessionAuth resolves the session cookie, refreshes the idle window and puts
// the admin identity into the request context. Missing, expired and unknown
// sessions all answer 401; a storage failure answers 500 rather than letting
// the request through.
func SessionAuth(auth *services.AuthService, cfg *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(cfg.CookieName)
		if err != nil || cookie == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Authentication required",
			})
			return
		}

		sessionID, err := uuid.Parse(cookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Session is invalid or has expired",
			})
			return
		}

		user, session, err := auth.CheckAuthenticated(sessionID)
		if err != nil {
			if errors.Is(err, services.ErrNotAuthenticated) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":   "Unauthorized",
					"message": "Session is invalid or has expired",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal Server Error",
				"message": "Could not verify session",
			})
			return
		}

		c.Set(ContextAdminID, user.ID)
		c.Set(ContextAdminName, user.Username)
		c.Set(ContextSessionID, session.ID)
		c.Set(ContextSessionCSRF, session.CSRFToken)
		c.Next()
	}
}
