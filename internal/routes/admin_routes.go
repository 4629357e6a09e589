package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/middleware"
)

// RegisterAdminRoutes mounts the session-protected management surface. Every
// mutating route also passes the CSRF check.
func RegisterAdminRoutes(router *gin.RouterGroup, d *Deps, sessionAuth gin.HandlerFunc) {
	router.Use(sessionAuth)
	router.Use(middleware.RequireCSRF(d.Auth))

	// Session lifecycle
	router.GET("/session", d.AuthController.Session)
	router.GET("/csrf", d.AuthController.CSRFToken)
	router.POST("/logout", d.AuthController.Logout)
	router.POST("/password", d.AuthController.ChangePassword)
	router.GET("/activity", d.AuthController.ActivityLog)

	// Two-factor management
	router.POST("/totp/setup", d.TOTPController.Setup)
	router.POST("/totp/verify", d.TOTPController.Verify)
	router.POST("/totp/disable", d.TOTPController.Disable)

	// Product catalog
	router.GET("/products", d.ProductController.ListAdmin)
	router.POST("/products", d.ProductController.Create)
	router.GET("/products/:id", d.ProductController.Get)
	router.PUT("/products/:id", d.ProductController.Update)
	router.PATCH("/products/:id/publish", d.ProductController.SetPublished)
	router.POST("/products/:id/preview-link", d.ProductController.PreviewLink)
	router.DELETE("/products/:id", d.ProductController.Delete)

	// Testimonials
	router.GET("/testimonials", d.TestimonialController.ListAdmin)
	router.POST("/testimonials", d.TestimonialController.Create)
	router.PUT("/testimonials/:id", d.TestimonialController.Update)
	router.DELETE("/testimonials/:id", d.TestimonialController.Delete)

	// Slideshow
	router.GET("/slides", d.SlideshowController.ListAdmin)
	router.POST("/slides", d.SlideshowController.Create)
	router.PUT("/slides/:id", d.SlideshowController.Update)
	router.DELETE("/slides/:id", d.SlideshowController.Delete)

	// Awards, certifications, quality badges
	router.GET("/awards", d.ShowcaseController.ListAwards)
	router.POST("/awards", d.ShowcaseController.CreateAward)
	router.PUT("/awards/:id", d.ShowcaseController.UpdateAward)
	router.DELETE("/awards/:id", d.ShowcaseController.DeleteAward)

	router.GET("/certifications", d.ShowcaseController.ListCertifications)
	router.POST("/certifications", d.ShowcaseController.CreateCertification)
	router.PUT("/certifications/:id", d.ShowcaseController.UpdateCertification)
	router.DELETE("/certifications/:id", d.ShowcaseController.DeleteCertification)

	router.GET("/badges", d.ShowcaseController.ListBadges)
	router.POST("/badges", d.ShowcaseController.CreateBadge)
	router.PUT("/badges/:id", d.ShowcaseController.UpdateBadge)
	router.DELETE("/badges/:id", d.ShowcaseController.DeleteBadge)

	// Contact info, settings, section visibility
	router.PUT("/contact", d.SiteController.UpdateContactInfo)
	router.GET("/settings", d.SiteController.ListSettings)
	router.PUT("/settings", d.SiteController.UpsertSetting)
	router.DELETE("/settings/:key", d.SiteController.DeleteSetting)
	router.PUT("/sections/:section", d.SiteController.SetSectionVisible)

	// Quotation queue
	router.GET("/quotations", d.QuotationController.List)
	router.PATCH("/quotations/:id/status", d.QuotationController.UpdateStatus)
	router.DELETE("/quotations/:id", d.QuotationController.Delete)

	// Media library
	router.POST("/media", d.MediaController.Upload)
	router.GET("/media", d.MediaController.List)
	router.DELETE("/media/:id", d.MediaController.Delete)

	// Cache
	router.POST("/cache/flush", d.MaintenanceController.FlushCache)
}
