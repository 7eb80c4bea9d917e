package main

import (
	"github.com/gin-gonic/gin"
	"github.com/hwportal/backend/internal/middleware"
	"github.com/hwportal/backend/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for the public auth routes
	authLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	r.GET("/health", svc.healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/register", svc.authHandler.Register)
			auth.POST("/login", svc.authHandler.Login)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)
			protected.POST("/auth/change-password", svc.authHandler.ChangePassword)

			// Projects
			protected.GET("/projects", svc.projectHandler.List)
			protected.POST("/projects", svc.projectHandler.Create)
			protected.GET("/projects/:projectId", svc.projectHandler.Get)
			protected.POST("/projects/:projectId/join", svc.projectHandler.Join)

			// Hardware catalog
			protected.GET("/hardware", svc.hardwareHandler.ListNames)
			protected.POST("/hardware", svc.hardwareHandler.Create)
			protected.GET("/hardware/:name", svc.hardwareHandler.Get)
			protected.GET("/inventory", svc.hardwareHandler.Inventory)

			// Checkout / check-in
			protected.POST("/checkout", svc.reservationHandler.CheckOut)
			protected.POST("/checkin", svc.reservationHandler.CheckIn)
		}
	}
}
