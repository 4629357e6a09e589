package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/cache"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/models"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/services"
)

// SiteController handles the contact-info singleton, free-form settings and
// the section visibility toggles.
type SiteController struct {
	site  *services.SiteService
	cache cache.Cache
}

func NewSiteController(site *services.SiteService, cache cache.Cache) *SiteController {
	return &SiteController{site: site, cache: cache}
}

// GetContactInfo
// GET /api/v1/contact
func (sc *SiteController) GetContactInfo(c *gin.Context) {
	info, err := sc.site.GetContactInfo()
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contact": info})
}

// UpdateContactInfo
// PUT /api/v1/admin/contact
func (sc *SiteController) UpdateContactInfo(c *gin.Context) {
	var info models.ContactInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": "Invalid request body"})
		return
	}
	updated, err := sc.site.UpdateContactInfo(&info)
	if err != nil {
		internalError(c)
		return
	}
	sc.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"contact": updated})
}

// ListSettings
// GET /api/v1/admin/settings
func (sc *SiteController) ListSettings(c *gin.Context) {
	settings, err := sc.site.ListSettings()
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

type settingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

// UpsertSetting
// PUT /api/v1/admin/settings
func (sc *SiteController) UpsertSetting(c *gin.Context) {
	var req settingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": "key is required"})
		return
	}
	setting, err := sc.site.UpsertSetting(req.Key, req.Value)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	sc.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"setting": setting})
}

// DeleteSetting
// DELETE /api/v1/admin/settings/:key
func (sc *SiteController) DeleteSetting(c *gin.Context) {
	if err := sc.site.DeleteSetting(c.Param("key")); err != nil {
		respondServiceError(c, err)
		return
	}
	sc.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// ListSections - visibility of each marketing-site section
// GET /api/v1/sections
func (sc *SiteController) ListSections(c *gin.Context) {
	sections, err := sc.site.ListSections()
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

type sectionRequest struct {
	Visible *bool `json:"visible" binding:"required"`
}

// SetSectionVisible
// PUT /api/v1/admin/sections/:section
func (sc *SiteController) SetSectionVisible(c *gin.Context) {
	var req sectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": "visible is required"})
		return
	}
	section, err := sc.site.SetSectionVisible(c.Param("section"), *req.Visible)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	sc.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"section": section})
}

func (sc *SiteController) invalidate(c *gin.Context) {
	if sc.cache != nil {
		_ = sc.cache.InvalidateAll(c.Request.Context())
	}
}
