package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/config"
)

// EmergencyResetAllowlist gates the unauthenticated password-reset endpoint.
// The endpoint answers 404 when disabled or when the caller's address is not
// on the list, so probes cannot tell it exists.
func EmergencyResetAllowlist(cfg *config.EmergencyResetConfig) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(cfg.AllowedAddresses))
	for _, addr := range cfg.AllowedAddresses {
		allowed[addr] = struct{}{}
	}

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Not Found"})
			return
		}
		if _, ok := allowed[c.ClientIP()]; !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Not Found"})
			return
		}
		c.Next()
	}
}

// CronSecret guards operational endpoints with a shared secret header.
func CronSecret(cfg *config.MaintenanceConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.CronSecret == "" || c.GetHeader("X-Cron-Secret") != cfg.CronSecret {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Invalid cron secret",
			})
			return
		}
		c.Next()
	}
}
