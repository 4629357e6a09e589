package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/cache"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/services"
)

type TestimonialController struct {
	testimonials *services.TestimonialService
	cache        cache.Cache
}

func NewTestimonialController(testimonials *services.TestimonialService, cache cache.Cache) *TestimonialController {
	return &TestimonialController{testimonials: testimonials, cache: cache}
}

// ListPublic - published testimonials
// GET /api/v1/testimonials
func (tc *TestimonialController) ListPublic(c *gin.Context) {
	items, err := tc.testimonials.List(false)
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"testimonials": items})
}

// ListAdmin - all testimonials including drafts
// GET /api/v1/admin/testimonials
func (tc *TestimonialController) ListAdmin(c *gin.Context) {
	items, err := tc.testimonials.List(true)
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"testimonials": items})
}

// Create
// POST /api/v1/admin/testimonials
func (tc *TestimonialController) Create(c *gin.Context) {
	var in services.TestimonialInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": "Invalid request body"})
		return
	}
	item, err := tc.testimonials.Create(&in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	tc.invalidate(c)
	c.JSON(http.StatusCreated, gin.H{"testimonial": item})
}

// Update
// PUT /api/v1/admin/testimonials/:id
func (tc *TestimonialController) Update(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var in services.TestimonialInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": "Invalid request body"})
		return
	}
	item, err := tc.testimonials.Update(id, &in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	tc.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"testimonial": item})
}

// Delete
// DELETE /api/v1/admin/testimonials/:id
func (tc *TestimonialController) Delete(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := tc.testimonials.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	tc.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

func (tc *TestimonialController) invalidate(c *gin.Context) {
	if tc.cache != nil {
		_ = tc.cache.InvalidateAll(c.Request.Context())
	}
}
