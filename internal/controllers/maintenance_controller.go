package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/cache"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/metrics"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/services"
)

// MaintenanceController exposes the cron-driven cleanup and the cache flush.
type MaintenanceController struct {
	maintenance *services.MaintenanceService
	cache       cache.Cache
	metrics     *metrics.Metrics
}

func NewMaintenanceController(maintenance *services.MaintenanceService, cache cache.Cache, m *metrics.Metrics) *MaintenanceController {
	return &MaintenanceController{maintenance: maintenance, cache: cache, metrics: m}
}

// Cleanup - prune expired sessions, stale login attempts and spent challenges
// POST /api/v1/ops/cleanup
func (mc *MaintenanceController) Cleanup(c *gin.Context) {
	report, err := mc.maintenance.Cleanup()
	if err != nil {
		internalError(c)
		return
	}
	if mc.metrics != nil {
		mc.metrics.CleanupRowsTotal.WithLabelValues("admin_sessions").Add(float64(report.SessionsRemoved))
		mc.metrics.CleanupRowsTotal.WithLabelValues("login_attempts").Add(float64(report.AttemptsRemoved))
		mc.metrics.CleanupRowsTotal.WithLabelValues("login_challenges").Add(float64(report.ChallengesRemoved))
	}
	c.JSON(http.StatusOK, report)
}

// FlushCache - drop every cached public response
// POST /api/v1/admin/cache/flush
func (mc *MaintenanceController) FlushCache(c *gin.Context) {
	if err := mc.cache.InvalidateAll(c.Request.Context()); err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cache flushed"})
}
