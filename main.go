package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"lostfound-server/config"
	"lostfound-server/database"
	"lostfound-server/jobs"
	"lostfound-server/middleware"
	"lostfound-server/routes"
	"lostfound-server/services"
	"lostfound-server/utils"
	ws "lostfound-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Make sure the image upload directory exists
	if err := utils.EnsureUploadDir(); err != nil {
		log.Fatal("Failed to create upload directory:", err)
	}

	// Set Gin mode
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security headers (must be first)
	router.Use(middleware.SecurityHeadersMiddleware())

	// Input validation
	router.Use(middleware.InputValidationMiddleware())

	// Rate limiting
	router.Use(middleware.RateLimitMiddleware())

	// CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Request logging
	router.Use(middleware.RequestLogMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Lost & Found server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Uploaded item images are public by filename
	router.Static("/uploads", config.AppConfig.Upload.Dir)

	// Live notification hub
	hub := ws.NewHub()
	go hub.Run()
	services.SetNotificationHub(hub)

	// API routes
	api := router.Group("/api")
	{
		// Auth routes (no authentication required) - with strict rate limiting
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterAuthRoutes(authRoutes)

		// Item routes (listing and detail are public)
		routes.RegisterItemRoutes(api.Group("/items"))

		// Claim routes (all protected)
		routes.RegisterClaimRoutes(api.Group("/claims"))

		// Notification routes (all protected)
		routes.RegisterNotificationRoutes(api.Group("/notifications"))

		// Profile and admin user management
		routes.RegisterUserRoutes(api.Group("/users"))

		// Live notification stream
		routes.RegisterWebSocketRoutes(api, hub)
	}

	// Start background jobs
	cleanupJob := jobs.NewCleanupJob()
	cleanupJob.Start()
	defer cleanupJob.Stop()

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = config.AppConfig.Server.Port
	}

	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
