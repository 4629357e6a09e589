package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/cache"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/services"
)

// ShowcaseController covers awards, certifications and quality badges, which
// share one input shape and only differ in the table behind them.
type ShowcaseController struct {
	showcase *services.ShowcaseService
	cache    cache.Cache
}

func NewShowcaseController(showcase *services.ShowcaseService, cache cache.Cache) *ShowcaseController {
	return &ShowcaseController{showcase: showcase, cache: cache}
}

// --- awards ---

// GET /api/v1/awards
func (sc *ShowcaseController) ListPublicAwards(c *gin.Context) {
	items, err := sc.showcase.ListAwards(false)
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"awards": items})
}

// GET /api/v1/admin/awards
func (sc *ShowcaseController) ListAwards(c *gin.Context) {
	items, err := sc.showcase.ListAwards(true)
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"awards": items})
}

// POST /api/v1/admin/awards
func (sc *ShowcaseController) CreateAward(c *gin.Context) {
	in, ok := sc.bindInput(c)
	if !ok {
		return
	}
	item, err := sc.showcase.CreateAward(in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	sc.invalidate(c)
	c.JSON(http.StatusCreated, gin.H{"award": item})
}

// PUT /api/v1/admin/awards/:id
func (sc *ShowcaseController) UpdateAward(c *gin.Context) {
	id, in, ok := sc.bindUpdate(c)
	if !ok {
		return
	}
	item, err := sc.showcase.UpdateAward(id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	sc.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"award": item})
}

// DELETE /api/v1/admin/awards/:id
func (sc *ShowcaseController) DeleteAward(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := sc.showcase.DeleteAward(id); err != nil {
		respondServiceError(c, err)
		return
	}
	sc.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// --- certifications ---

// GET /api/v1/certifications
func (sc *ShowcaseController) ListPublicCertifications(c *gin.Context) {
	items, err := sc.showcase.ListCertifications(false)
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"certifications": items})
}

// GET /api/v1/admin/certifications
func (sc *ShowcaseController) ListCertifications(c *gin.Context) {
	items, err := sc.showcase.ListCertifications(true)
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"certifications": items})
}

// POST /api/v1/admin/certifications
func (sc *ShowcaseController) CreateCertification(c *gin.Context) {
	in, ok := sc.bindInput(c)
	if !ok {
		return
	}
	item, err := sc.showcase.CreateCertification(in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	sc.invalidate(c)
	c.JSON(http.StatusCreated, gin.H{"certification": item})
}

// PUT /api/v1/admin/certifications/:id
func (sc *ShowcaseController) UpdateCertification(c *gin.Context) {
	id, in, ok := sc.bindUpdate(c)
	if !ok {
		return
	}
	item, err := sc.showcase.UpdateCertification(id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	sc.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"certification": item})
}

// DELETE /api/v1/admin/certifications/:id
func (sc *ShowcaseController) DeleteCertification(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := sc.showcase.DeleteCertification(id); err != nil {
		respondServiceError(c, err)
		return
	}
	sc.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// --- quality badges ---

// GET /api/v1/badges
func (sc *ShowcaseController) ListPublicBadges(c *gin.Context) {
	items, err := sc.showcase.ListBadges(false)
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"badges": items})
}

// GET /api/v1/admin/badges
func (sc *ShowcaseController) ListBadges(c *gin.Context) {
	items, err := sc.showcase.ListBadges(true)
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"badges": items})
}

// POST /api/v1/admin/badges
func (sc *ShowcaseController) CreateBadge(c *gin.Context) {
	in, ok := sc.bindInput(c)
	if !ok {
		return
	}
	item, err := sc.showcase.CreateBadge(in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	sc.invalidate(c)
	c.JSON(http.StatusCreated, gin.H{"badge": item})
}

// PUT /api/v1/admin/badges/:id
func (sc *ShowcaseController) UpdateBadge(c *gin.Context) {
	id, in, ok := sc.bindUpdate(c)
	if !ok {
		return
	}
	item, err := sc.showcase.UpdateBadge(id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	sc.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"badge": item})
}

// DELETE /api/v1/admin/badges/:id
func (sc *ShowcaseController) DeleteBadge(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := sc.showcase.DeleteBadge(id); err != nil {
		respondServiceError(c, err)
		return
	}
	sc.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

func (sc *ShowcaseController) bindInput(c *gin.Context) (*services.ShowcaseInput, bool) {
	var in services.ShowcaseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": "Invalid request body"})
		return nil, false
	}
	return &in, true
}

func (sc *ShowcaseController) bindUpdate(c *gin.Context) (uuid.UUID, *services.ShowcaseInput, bool) {
	id, ok := pathUUID(c)
	if !ok {
		return uuid.Nil, nil, false
	}
	in, ok := sc.bindInput(c)
	if !ok {
		return uuid.Nil, nil, false
	}
	return id, in, true
}

func (sc *ShowcaseController) invalidate(c *gin.Context) {
	if sc.cache != nil {
		_ = sc.cache.InvalidateAll(c.Request.Context())
	}
}
