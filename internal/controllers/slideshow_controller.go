package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/cache"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/services"
)

type SlideshowController struct {
	slides *services.SlideshowService
	cache  cache.Cache
}

func NewSlideshowController(slides *services.SlideshowService, cache cache.Cache) *SlideshowController {
	return &SlideshowController{slides: slides, cache: cache}
}

// ListPublic - active slides in display order
// GET /api/v1/slides
func (sc *SlideshowController) ListPublic(c *gin.Context) {
	items, err := sc.slides.List(false)
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slides": items})
}

// ListAdmin - all slides including inactive ones
// GET /api/v1/admin/slides
func (sc *SlideshowController) ListAdmin(c *gin.Context) {
	items, err := sc.slides.List(true)
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slides": items})
}

// Create
// POST /api/v1/admin/slides
func (sc *SlideshowController) Create(c *gin.Context) {
	var in services.SlideInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": "Invalid request body"})
		return
	}
	item, err := sc.slides.Create(&in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	sc.invalidate(c)
	c.JSON(http.StatusCreated, gin.H{"slide": item})
}

// Update
// PUT /api/v1/admin/slides/:id
func (sc *SlideshowController) Update(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var in services.SlideInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": "Invalid request body"})
		return
	}
	item, err := sc.slides.Update(id, &in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	sc.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"slide": item})
}

// Delete
// DELETE /api/v1/admin/slides/:id
func (sc *SlideshowController) Delete(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := sc.slides.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	sc.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

func (sc *SlideshowController) invalidate(c *gin.Context) {
	if sc.cache != nil {
		_ = sc.cache.InvalidateAll(c.Request.Context())
	}
}
