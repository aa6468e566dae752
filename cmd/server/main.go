package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/medhive/pharmacy-admin/internal/config"
	"github.com/medhive/pharmacy-admin/internal/handlers"
	"github.com/medhive/pharmacy-admin/internal/middleware"
	"github.com/medhive/pharmacy-admin/internal/services"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Remote pharmacy backend client
	api := services.NewPharmacyAPIClient(cfg.PharmacyAPIURL, cfg.RequestTimeout)

	// Failure-report archive (optional; skipped when S3 is not configured)
	var archiver *services.ReportArchiver
	if cfg.StorageConfigured() {
		var err error
		archiver, err = services.NewReportArchiver(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3Region, cfg.S3UseSSL)
		if err != nil {
			log.Printf("Warning: Failed to initialize report storage: %v", err)
			archiver = nil
		} else if err := archiver.EnsureBucket(context.Background()); err != nil {
			log.Printf("Warning: Failed to ensure S3 bucket exists: %v", err)
		}
	} else {
		log.Println("Report storage not configured, failure reports disabled")
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    cfg.MaxUploadMB << 20,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Create handler with dependencies
	h := handlers.New(cfg, api, archiver)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API routes
	apiGroup := app.Group("/api")

	// Auth routes
	auth := apiGroup.Group("/auth")
	auth.Post("/login", h.Login)
	auth.Get("/me", middleware.AuthRequired(cfg), h.Me)

	// Store routes (authenticated)
	stores := apiGroup.Group("/stores", middleware.AuthRequired(cfg))
	stores.Get("/:id/inventory", h.GetStoreInventory)
	stores.Post("/:id/inventory/import", h.ImportInventory)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
