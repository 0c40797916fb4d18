// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/stylehaus/atelier-backend/internal/config"
	"github.com/stylehaus/atelier-backend/internal/handlers"
	"github.com/stylehaus/atelier-backend/internal/middleware"
	"github.com/stylehaus/atelier-backend/internal/services"
	"github.com/stylehaus/atelier-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize storage service")
	}

	authService := services.NewAuthService(db, cfg)
	clothingService := services.NewClothingService(db)
	designerService := services.NewDesignerService(db)
	taxonomyService := services.NewTaxonomyService(db)
	historyService := services.NewHistoryService(db, clothingService)
	permissionService := services.NewPermissionService(db)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	clothingHandler := handlers.NewClothingHandler(clothingService)
	designerHandler := handlers.NewDesignerHandler(designerService, clothingService)
	taxonomyHandler := handlers.NewTaxonomyHandler(taxonomyService)
	historyHandler := handlers.NewHistoryHandler(historyService)
	permissionHandler := handlers.NewPermissionHandler(permissionService)
	adminHandler := handlers.NewAdminHandler(adminService)
	uploadHandler := handlers.NewUploadHandler(storageService)
	pageHandler := handlers.NewPageHandler(clothingService, designerService, taxonomyService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Server-rendered pages
	r.LoadHTMLGlob(cfg.Server.TemplateGlob)
	pages := r.Group("")
	pages.Use(middleware.OptionalAuth())
	{
		pages.GET("/", pageHandler.ClothingListPage)
		pages.GET("/clothing/:id", pageHandler.ClothingDetailPage)
		pages.GET("/designers/browse", pageHandler.DesignerListPage)
		pages.GET("/designer/:id", pageHandler.DesignerDetailPage)
	}

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		// Clothing routes
		clothes := v1.Group("/clothes")
		{
			clothes.GET("", middleware.OptionalAuth(), clothingHandler.GetClothes)
			clothes.GET("/search", middleware.OptionalAuth(), clothingHandler.SearchClothes)
			clothes.GET("/:id", middleware.OptionalAuth(), clothingHandler.GetClothing)
			clothes.GET("/:id/history", middleware.OptionalAuth(), clothingHandler.GetClothingHistory)

			// Authenticated routes
			protected := clothes.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", clothingHandler.CreateClothing)
				protected.PUT("/:id", clothingHandler.UpdateClothing)
				protected.DELETE("/:id", clothingHandler.DeleteClothing)
				protected.POST("/:id/publish", clothingHandler.PublishClothing)
			}
		}

		// Designer routes
		designers := v1.Group("/designers")
		{
			designers.GET("", designerHandler.GetDesigners)
			designers.GET("/:id", designerHandler.GetDesigner)
			designers.GET("/:id/clothes", middleware.OptionalAuth(), designerHandler.GetDesignerClothes)

			designers.POST("", middleware.AuthRequired(), middleware.StaffRequired(), designerHandler.CreateDesigner)
			designers.PUT("/:id", middleware.AuthRequired(), designerHandler.UpdateDesigner)
			designers.DELETE("/:id", middleware.AuthRequired(), middleware.StaffRequired(), designerHandler.DeleteDesigner)
		}

		// Taxonomy routes; reads public, writes staff-only
		staffOnly := []gin.HandlerFunc{middleware.AuthRequired(), middleware.StaffRequired()}

		categories := v1.Group("/categories")
		{
			categories.GET("", taxonomyHandler.GetCategories)
			categories.GET("/:id", taxonomyHandler.GetCategory)
			categories.POST("", append(staffOnly, taxonomyHandler.CreateCategory)...)
			categories.PUT("/:id", append(staffOnly, taxonomyHandler.UpdateCategory)...)
			categories.DELETE("/:id", append(staffOnly, taxonomyHandler.DeleteCategory)...)
		}

		tags := v1.Group("/tags")
		{
			tags.GET("", taxonomyHandler.GetTags)
			tags.GET("/:id", taxonomyHandler.GetTag)
			tags.POST("", append(staffOnly, taxonomyHandler.CreateTag)...)
			tags.PUT("/:id", append(staffOnly, taxonomyHandler.UpdateTag)...)
			tags.DELETE("/:id", append(staffOnly, taxonomyHandler.DeleteTag)...)
		}

		seasons := v1.Group("/seasons")
		{
			seasons.GET("", taxonomyHandler.GetSeasons)
			seasons.GET("/:id", taxonomyHandler.GetSeason)
			seasons.POST("", append(staffOnly, taxonomyHandler.CreateSeason)...)
			seasons.PUT("/:id", append(staffOnly, taxonomyHandler.UpdateSeason)...)
			seasons.DELETE("/:id", append(staffOnly, taxonomyHandler.DeleteSeason)...)
		}

		materials := v1.Group("/materials")
		{
			materials.GET("", taxonomyHandler.GetMaterials)
			materials.GET("/:id", taxonomyHandler.GetMaterial)
			materials.POST("", append(staffOnly, taxonomyHandler.CreateMaterial)...)
			materials.PUT("/:id", append(staffOnly, taxonomyHandler.UpdateMaterial)...)
			materials.DELETE("/:id", append(staffOnly, taxonomyHandler.DeleteMaterial)...)
		}

		// History routes (read-only)
		history := v1.Group("/history")
		history.Use(middleware.OptionalAuth())
		{
			history.GET("", historyHandler.GetHistory)
			history.GET("/:id", historyHandler.GetHistoryEntry)
		}

		// Permission routes (staff-only)
		permissions := v1.Group("/permissions")
		permissions.Use(middleware.AuthRequired(), middleware.StaffRequired())
		{
			permissions.GET("", permissionHandler.GetPermissions)
			permissions.GET("/:id", permissionHandler.GetPermission)
			permissions.POST("", permissionHandler.GrantPermission)
			permissions.PUT("/:id", permissionHandler.UpdatePermission)
			permissions.DELETE("/:id", permissionHandler.RevokePermission)
		}

		// Account management (staff-only)
		users := v1.Group("/users")
		users.Use(middleware.AuthRequired(), middleware.StaffRequired())
		{
			users.GET("", adminHandler.GetUsers)
			users.GET("/:id", adminHandler.GetUser)
			users.POST("", adminHandler.CreateUser)
			users.PUT("/:id", adminHandler.UpdateUser)
			users.DELETE("/:id", adminHandler.DeleteUser)
		}

		// Admin dashboard
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.StaffRequired())
		{
			admin.GET("/dashboard", adminHandler.GetDashboard)
		}

		// Uploads
		uploads := v1.Group("/uploads")
		uploads.Use(middleware.AuthRequired(), middleware.UploadRateLimit())
		{
			uploads.POST("", uploadHandler.UploadFile)
		}
	}

	// Static file serving for locally stored uploads
	r.Static("/uploads", cfg.Server.UploadDir)

	return r
}
