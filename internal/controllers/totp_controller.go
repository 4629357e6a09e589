package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/middleware"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/services"
)

// TOTPController manages the optional second factor for admin accounts.
type TOTPController struct {
	auth *services.AuthService
}

func NewTOTPController(auth *services.AuthService) *TOTPController {
	return &TOTPController{auth: auth}
}

// Setup - generate a new TOTP secret and provisioning QR code
// POST /api/v1/admin/totp/setup
func (tc *TOTPController) Setup(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextAdminID).(uuid.UUID)
	setup, err := tc.auth.SetupTOTP(adminID)
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"secret":  setup.Secret,
		"qr_code": setup.QRCode,
	})
}

type totpCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// Verify - confirm the admin can produce codes, activating the factor
// POST /api/v1/admin/totp/verify
func (tc *TOTPController) Verify(c *gin.Context) {
	var req totpCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "code is required",
		})
		return
	}

	adminID := c.MustGet(middleware.ContextAdminID).(uuid.UUID)
	if err := tc.auth.VerifyTOTP(adminID, req.Code); err != nil {
		tc.respondTOTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Two-factor authentication enabled"})
}

// Disable - turn the second factor off after a final code check
// POST /api/v1/admin/totp/disable
func (tc *TOTPController) Disable(c *gin.Context) {
	var req totpCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "code is required",
		})
		return
	}

	adminID := c.MustGet(middleware.ContextAdminID).(uuid.UUID)
	if err := tc.auth.DisableTOTP(adminID, req.Code); err != nil {
		tc.respondTOTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Two-factor authentication disabled"})
}

func (tc *TOTPController) respondTOTPError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidTOTPCode):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthorized",
			"message": "Invalid verification code",
		})
	case errors.Is(err, services.ErrTOTPSecretNotCreated), errors.Is(err, services.ErrTOTPNotEnabled):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": err.Error(),
		})
	default:
		internalError(c)
	}
}
