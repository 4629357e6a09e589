package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/metrics"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/middleware"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/services"
)

type MediaController struct {
	media   *services.MediaService
	metrics *metrics.Metrics
}

func NewMediaController(media *services.MediaService, m *metrics.Metrics) *MediaController {
	return &MediaController{media: media, metrics: m}
}

// Upload - multipart image upload
// POST /api/v1/admin/media
func (mc *MediaController) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "file field is required",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		internalError(c)
		return
	}
	defer file.Close()

	public := true
	if raw := c.PostForm("public"); raw != "" {
		if parsed, perr := strconv.ParseBool(raw); perr == nil {
			public = parsed
		}
	}

	adminID := c.MustGet(middleware.ContextAdminID).(uuid.UUID)
	asset, err := mc.media.Upload(c.Request.Context(), &services.UploadInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
		Public:      public,
		UploadedBy:  adminID,
	})
	if err != nil {
		mc.countUpload("failure")
		switch {
		case errors.Is(err, services.ErrFileTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":   "Payload Too Large",
				"message": err.Error(),
			})
		case errors.Is(err, services.ErrUnsupportedFile):
			c.JSON(http.StatusUnsupportedMediaType, gin.H{
				"error":   "Unsupported Media Type",
				"message": err.Error(),
			})
		default:
			internalError(c)
		}
		return
	}

	mc.countUpload("success")
	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// List - paginated asset listing
// GET /api/v1/admin/media?limit=20&offset=0
func (mc *MediaController) List(c *gin.Context) {
	limit := intQuery(c, "limit", 20)
	offset := intQuery(c, "offset", 0)
	assets, total, err := mc.media.List(limit, offset)
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"assets": assets,
		"total":  total,
	})
}

// Delete - remove the asset and its stored blob
// DELETE /api/v1/admin/media/:id
func (mc *MediaController) Delete(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := mc.media.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrMediaAssetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Media asset not found",
			})
			return
		}
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

func (mc *MediaController) countUpload(outcome string) {
	if mc.metrics != nil {
		mc.metrics.UploadsTotal.WithLabelValues(outcome).Inc()
	}
}
