// Package handlers provides HTTP request handlers for the URL shortener service.
package handlers

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all the routes for the URL shortener service.
func RegisterRoutes(r *gin.Engine, handler URLHandlerInterface) {
	// Apply CORS middleware to all routes
	r.Use(CORSMiddleware())

	// API routes
	v1 := r.Group("/api/v1")
	{
		v1.POST("/shorten", handler.CreateShortURL)
		v1.GET("/:short_code/stats", handler.GetStats)
	}

	// Health check route
	r.GET("/health", handler.HealthCheck)

	// Redirection route (not under /api/v1 as it's user-facing)
	r.GET("/:short_code", handler.RedirectURL)
}
