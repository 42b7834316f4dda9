package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/telbook/telbook-backend/internal/config"
	"github.com/telbook/telbook-backend/internal/database"
	"github.com/telbook/telbook-backend/internal/handlers"
	"github.com/telbook/telbook-backend/internal/middleware"
	"github.com/telbook/telbook-backend/internal/routes"
	"github.com/telbook/telbook-backend/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	if cfg.IsProduction() && cfg.JWTSecret == "change-me-in-production" {
		log.Fatal("SECRET_KEY must be set in production")
	}

	// Connect to MongoDB
	log.Printf("Connecting to MongoDB...")
	if err := database.Connect(cfg.MongoURI, cfg.DatabaseName); err != nil {
		log.Fatal("Failed to connect to MongoDB: ", err)
	}
	defer database.Disconnect()

	// Ensure indexes for the list filters and sorts
	if err := services.EnsureContactIndexes(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB indexes: %v", err)
	} else {
		log.Println("✅ MongoDB indexes ensured")
	}

	// Connect to Redis (rate limiting only; degraded without it)
	if cfg.RedisURI != "" {
		if err := database.ConnectRedis(cfg.RedisURI); err != nil {
			log.Printf("⚠️  WARNING: failed to connect to Redis: %v", err)
			log.Println("   Rate limiting will be disabled")
		} else {
			defer database.DisconnectRedis()
		}
	} else {
		log.Println("Warning: REDIS_URI not set. Rate limiting will be disabled")
	}

	// Initialize Cloudinary for profile pictures
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		if err := handlers.InitCloudinaryService(cfg); err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("Profile picture uploads will be stored inline")
		} else {
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. Profile picture uploads will be stored inline")
	}

	// Auth service for the single configured admin
	authService := services.NewAuthService(cfg)
	handlers.InitAuthService(authService)

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.IsProduction() {
		r.Use(middleware.SecurityHeaders)
		log.Println("✅ Production security headers enabled")
	}
	r.Use(middleware.RateLimit)

	routes.SetupRoutes(r, authService)

	log.Printf("🚀 Telbook backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
