package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/middleware"
)

func RegisterAuthRoutes(router *gin.RouterGroup, d *Deps) {
	// POST /auth/login - password step
	router.POST("/login", d.AuthController.Login)

	// POST /auth/login/totp - second factor step
	router.POST("/login/totp", d.AuthController.LoginTOTP)

	// POST /auth/emergency-reset - allowlisted addresses only
	reset := router.Group("")
	reset.Use(middleware.EmergencyResetAllowlist(&d.Config.EmergencyReset))
	{
		reset.POST("/emergency-reset", d.AuthController.EmergencyReset)
	}
}
