package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/cache"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/config"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/controllers"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/metrics"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/middleware"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/services"
)

// Deps bundles everything the route tree needs.
type Deps struct {
	Config  *config.Config
	Auth    *services.AuthService
	Cache   cache.Cache
	Metrics *metrics.Metrics

	AuthController        *controllers.AuthController
	TOTPController        *controllers.TOTPController
	ProductController     *controllers.ProductController
	TestimonialController *controllers.TestimonialController
	SlideshowController   *controllers.SlideshowController
	ShowcaseController    *controllers.ShowcaseController
	SiteController        *controllers.SiteController
	QuotationController   *controllers.QuotationController
	MediaController       *controllers.MediaController
	MaintenanceController *controllers.MaintenanceController
}

// SetupRoutes registers all application routes.
func SetupRoutes(router *gin.Engine, d *Deps) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if d.Config.Metrics.Enabled && d.Metrics != nil {
		router.Use(middleware.RecordMetrics(d.Metrics))
		router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	api := router.Group("/api/v1")

	// Login and the emergency escape hatch: /api/v1/auth/*
	RegisterAuthRoutes(api.Group("/auth"), d)

	// Public marketing-site reads and the quotation form
	RegisterPublicRoutes(api, d)

	// Authenticated admin surface: /api/v1/admin/*
	sessionAuth := middleware.SessionAuth(d.Auth, &d.Config.Auth)
	RegisterAdminRoutes(api.Group("/admin"), d, sessionAuth)

	// Operational endpoints guarded by the cron secret
	ops := api.Group("/ops")
	ops.Use(middleware.CronSecret(&d.Config.Maintenance))
	{
		// POST /ops/cleanup - prune expired auth rows
		ops.POST("/cleanup", d.MaintenanceController.Cleanup)
	}
}
