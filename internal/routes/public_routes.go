package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/middleware"
)

// RegisterPublicRoutes mounts everything the marketing site reads without
// authentication. GET responses go through the cache.
func RegisterPublicRoutes(router *gin.RouterGroup, d *Deps) {
	public := router.Group("")
	public.Use(middleware.CachePublicGET(d.Cache, d.Metrics))
	{
		// GET /products - published catalog
		public.GET("/products", d.ProductController.ListPublic)
		// GET /products/preview?token=... - draft preview via signed token
		public.GET("/products/preview", d.ProductController.Preview)
		// GET /products/:slug
		public.GET("/products/:slug", d.ProductController.GetBySlug)

		// GET /slides - active hero slides
		public.GET("/slides", d.SlideshowController.ListPublic)

		// GET /testimonials
		public.GET("/testimonials", d.TestimonialController.ListPublic)

		// GET /awards, /certifications, /badges
		public.GET("/awards", d.ShowcaseController.ListPublicAwards)
		public.GET("/certifications", d.ShowcaseController.ListPublicCertifications)
		public.GET("/badges", d.ShowcaseController.ListPublicBadges)

		// GET /contact - company contact block
		public.GET("/contact", d.SiteController.GetContactInfo)

		// GET /sections - which site sections are switched on
		public.GET("/sections", d.SiteController.ListSections)
	}

	// POST /quotations - public quotation request form, never cached
	router.POST("/quotations", d.QuotationController.Submit)
}
