// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/fiscalops/backend/internal/integration/entrypoint/controller"
	"github.com/fiscalops/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	deductionController   *controller.DeductionController
	incomeController      *controller.IncomeController
	bracketController     *controller.BracketController
	taxAnalysisController *controller.TaxAnalysisController
	loginRateLimiter      *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	deductionController *controller.DeductionController,
	incomeController *controller.IncomeController,
	bracketController *controller.BracketController,
	taxAnalysisController *controller.TaxAnalysisController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		deductionController:   deductionController,
		incomeController:      incomeController,
		bracketController:     bracketController,
		taxAnalysisController: taxAnalysisController,
		loginRateLimiter:      loginRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes (only setup if auth controller is available)
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
			}
		}

		// Deduction record routes (require authentication)
		if r.deductionController != nil && r.authMiddleware != nil {
			deductions := v1.Group("/deductions")
			deductions.Use(r.authMiddleware.Authenticate())
			{
				deductions.GET("", r.deductionController.List)
				deductions.POST("", r.deductionController.Create)
				deductions.PATCH("/:id/review", r.deductionController.Review)
				deductions.DELETE("/:id", r.deductionController.Delete)
			}
		}

		// Income record routes (require authentication)
		if r.incomeController != nil && r.authMiddleware != nil {
			incomes := v1.Group("/incomes")
			incomes.Use(r.authMiddleware.Authenticate())
			{
				incomes.GET("", r.incomeController.List)
				incomes.POST("", r.incomeController.Create)
				incomes.DELETE("/:id", r.incomeController.Delete)
			}
		}

		// Tax bracket reference data routes (require authentication)
		if r.bracketController != nil && r.authMiddleware != nil {
			brackets := v1.Group("/tax/brackets")
			brackets.Use(r.authMiddleware.Authenticate())
			{
				brackets.GET("/:jurisdiction/:year", r.bracketController.List)
				brackets.PUT("/:jurisdiction/:year", r.bracketController.Import)
			}
		}

		// Tax analysis routes (require authentication)
		if r.taxAnalysisController != nil && r.authMiddleware != nil {
			analyses := v1.Group("/tax/analyses")
			analyses.Use(r.authMiddleware.Authenticate())
			{
				analyses.GET("", r.taxAnalysisController.List)
				analyses.POST("", r.taxAnalysisController.Run)
				analyses.GET("/:id", r.taxAnalysisController.Get)
				analyses.POST("/:id/advisory", r.taxAnalysisController.RequestAdvisory)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
