package routes

import (
	"database/sql"

	"lawpath_backend/categories"
	"lawpath_backend/db"
	"lawpath_backend/handlers"
	"lawpath_backend/middleware"
	"lawpath_backend/storage"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(r *gin.Engine, database *sql.DB, jwtSecret []byte, registry *categories.Registry, files *storage.AudioStore) {
	store := db.NewLessonStore(database, registry, files)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(database, jwtSecret)
	healthHandler := handlers.NewHealthHandler(database)
	lessonHandler := handlers.NewLessonHandler(store)
	adminHandler := handlers.NewAdminLessonHandler(store, files)
	categoryHandler := handlers.NewCategoryHandler(store, registry)

	// Public routes
	r.GET("/health", healthHandler.HealthCheck)
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(database, jwtSecret))
	{
		protected.POST("/logout", authHandler.Logout)

		// Lesson routes (read-only, active lessons)
		protected.GET("/audio-lessons", lessonHandler.List)
		protected.GET("/audio-lessons/search", lessonHandler.Search)
		protected.GET("/audio-lessons/categories", categoryHandler.GetCategoriesWithCount)
		protected.GET("/audio-lessons/categories/all", categoryHandler.GetAllCategories)
		protected.GET("/audio-lessons/category/:category", lessonHandler.GetByCategory)
		protected.GET("/audio-lessons/:id", lessonHandler.GetByID)
	}

	// Admin routes (lesson management)
	admin := r.Group("/admin/audio-lessons")
	admin.Use(middleware.AuthMiddleware(database, jwtSecret), middleware.RequireAdmin())
	{
		admin.POST("", adminHandler.Create)
		admin.GET("", adminHandler.List)
		admin.GET("/categories", categoryHandler.GetCategoriesWithCount)
		admin.GET("/categories/all", categoryHandler.GetAllCategories)
		admin.GET("/:id", adminHandler.GetByID)
		admin.PUT("/:id", adminHandler.Update)
		admin.PUT("/:id/sections", adminHandler.UpdateSections)
		admin.DELETE("/:id", adminHandler.Delete)
	}
}
