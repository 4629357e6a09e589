package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/metrics"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/models"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/services"
)

// QuotationController takes public quotation requests and lets admins work
// through the queue.
type QuotationController struct {
	quotations *services.QuotationService
	metrics    *metrics.Metrics
}

func NewQuotationController(quotations *services.QuotationService, m *metrics.Metrics) *QuotationController {
	return &QuotationController{quotations: quotations, metrics: m}
}

// Submit - public quotation form
// POST /api/v1/quotations
func (qc *QuotationController) Submit(c *gin.Context) {
	var in services.QuotationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": "Invalid request body"})
		return
	}
	request, err := qc.quotations.Submit(&in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if qc.metrics != nil {
		qc.metrics.QuotationsTotal.Inc()
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Quotation request received",
		"id":      request.ID,
	})
}

// List - admin queue, optionally filtered by status
// GET /api/v1/admin/quotations?status=new
func (qc *QuotationController) List(c *gin.Context) {
	status := models.QuotationStatus(c.Query("status"))
	requests, err := qc.quotations.List(status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotations": requests})
}

type quotationStatusRequest struct {
	Status models.QuotationStatus `json:"status" binding:"required"`
}

// UpdateStatus - move a request forward in the workflow
// PATCH /api/v1/admin/quotations/:id/status
func (qc *QuotationController) UpdateStatus(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req quotationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": "status is required"})
		return
	}
	request, err := qc.quotations.UpdateStatus(id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotation": request})
}

// Delete
// DELETE /api/v1/admin/quotations/:id
func (qc *QuotationController) Delete(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := qc.quotations.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
