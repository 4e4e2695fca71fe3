// Package router sets up the HTTP routing for the application.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dompet/ledger/internal/integration/entrypoint/controller"
	"github.com/dompet/ledger/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine           *gin.Engine
	healthController *controller.HealthController
	authController   *controller.AuthController
	userController   *controller.UserController
	assetController  *controller.AssetController
	recordController *controller.RecordController
	loginRateLimiter *middleware.RateLimiter
	authMiddleware   *middleware.AuthMiddleware
	allowedOrigins   []string
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	assetController *controller.AssetController,
	recordController *controller.RecordController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	allowedOrigins []string,
) *Router {
	return &Router{
		healthController: healthController,
		authController:   authController,
		userController:   userController,
		assetController:  assetController,
		recordController: recordController,
		loginRateLimiter: loginRateLimiter,
		authMiddleware:   authMiddleware,
		allowedOrigins:   allowedOrigins,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Default middleware: logger and recovery
	r.engine = gin.Default()
	r.engine.Use(r.corsMiddleware())

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// corsMiddleware allows the configured origins, or any origin when none are configured.
func (r *Router) corsMiddleware() gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Retry-After"},
		AllowCredentials: len(r.allowedOrigins) > 0,
		MaxAge:           12 * time.Hour,
	}
	if len(r.allowedOrigins) > 0 {
		cfg.AllowOrigins = r.allowedOrigins
	} else {
		cfg.AllowAllOrigins = true
	}
	return cors.New(cfg)
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	// Public auth routes
	v1.POST("/register", r.authController.Register)
	v1.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
	v1.POST("/refresh", r.authController.RefreshToken)
	v1.POST("/logout", r.authController.Logout)
	v1.GET("/verify-email", r.authController.VerifyEmail)
	v1.POST("/reset-password/confirm", r.authController.ConfirmPasswordReset)

	authed := v1.Group("")
	authed.Use(r.authMiddleware.Authenticate())
	{
		authed.POST("/reset-password", r.authController.RequestPasswordReset)

		authed.GET("/user", r.userController.Get)
		authed.DELETE("/user", r.userController.Delete)

		assets := authed.Group("/assets")
		{
			assets.POST("", r.assetController.Create)
			assets.GET("", r.assetController.List)
			assets.GET("/:assetId", r.assetController.Get)
			assets.PUT("/:assetId", r.assetController.Update)
			assets.DELETE("/:assetId", r.assetController.Delete)
		}

		records := authed.Group("/records")
		{
			records.POST("", r.recordController.Create)
			records.GET("", r.recordController.List)
			records.GET("/:recordId", r.recordController.Get)
			records.PUT("/:recordId", r.recordController.Update)
			records.DELETE("/:recordId", r.recordController.Delete)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
