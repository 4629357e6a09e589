package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/cache"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/services"
)

// ProductController serves the public catalog and the admin CRUD surface for
// coffee and cocoa products.
type ProductController struct {
	catalog *services.CatalogService
	preview *services.PreviewService
	cache   cache.Cache
}

func NewProductController(catalog *services.CatalogService, preview *services.PreviewService, cache cache.Cache) *ProductController {
	return &ProductController{catalog: catalog, preview: preview, cache: cache}
}

// ListPublic - published products only
// GET /api/v1/products
func (pc *ProductController) ListPublic(c *gin.Context) {
	products, err := pc.catalog.List(false)
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetBySlug - a single published product
// GET /api/v1/products/:slug
func (pc *ProductController) GetBySlug(c *gin.Context) {
	product, err := pc.catalog.GetPublishedBySlug(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Preview - fetch a product (published or not) through a signed token
// GET /api/v1/products/preview?token=...
func (pc *ProductController) Preview(c *gin.Context) {
	productID, err := pc.preview.ValidateToken(c.Query("token"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidPreviewToken) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Invalid or expired preview token",
			})
			return
		}
		internalError(c)
		return
	}

	product, err := pc.catalog.GetByID(productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// ListAdmin - every product, including unpublished drafts
// GET /api/v1/admin/products
func (pc *ProductController) ListAdmin(c *gin.Context) {
	products, err := pc.catalog.List(true)
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// Get - one product by id
// GET /api/v1/admin/products/:id
func (pc *ProductController) Get(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	product, err := pc.catalog.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Create
// POST /api/v1/admin/products
func (pc *ProductController) Create(c *gin.Context) {
	var in services.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": "Invalid request body"})
		return
	}
	product, err := pc.catalog.Create(&in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	pc.invalidate(c)
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// Update
// PUT /api/v1/admin/products/:id
func (pc *ProductController) Update(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var in services.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": "Invalid request body"})
		return
	}
	product, err := pc.catalog.Update(id, &in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	pc.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"product": product})
}

type publishRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// SetPublished - toggle public visibility
// PATCH /api/v1/admin/products/:id/publish
func (pc *ProductController) SetPublished(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": "published is required"})
		return
	}
	if err := pc.catalog.SetPublished(id, *req.Published); err != nil {
		respondServiceError(c, err)
		return
	}
	pc.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

// Delete
// DELETE /api/v1/admin/products/:id
func (pc *ProductController) Delete(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := pc.catalog.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	pc.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// PreviewLink - mint a signed preview URL token for a draft
// POST /api/v1/admin/products/:id/preview-link
func (pc *ProductController) PreviewLink(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if _, err := pc.catalog.GetByID(id); err != nil {
		respondServiceError(c, err)
		return
	}
	token, err := pc.preview.GenerateToken(id)
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (pc *ProductController) invalidate(c *gin.Context) {
	if pc.cache != nil {
		_ = pc.cache.InvalidateAll(c.Request.Context())
	}
}
