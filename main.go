package main

import (
	"context"
	"log"

	"codebot-backend/config"
	"codebot-backend/database"
	"codebot-backend/handlers"
	"codebot-backend/middleware"
	"codebot-backend/repository"
	"codebot-backend/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("INFO: [Main] No .env file found, using environment")
	}

	cfg := config.LoadConfig()

	db, err := database.Init(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize database: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db, cfg.FreeRequestsLimit)
	usageRepo := repository.NewUsageRepository(db)

	// Services
	generator := services.NewGenerator(context.Background(), cfg.GeminiAPIKey)
	var replier services.Replier = services.NoopReplier{}
	if cfg.TelegramBotToken != "" {
		replier = services.NewTelegramReplier(cfg.TelegramBotToken)
	}
	webhookService := services.NewWebhookService(userRepo, usageRepo, generator, replier)

	h := handlers.NewHandler(cfg, userRepo, usageRepo, webhookService)

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-User-Id"}
	r.Use(cors.New(corsConfig))

	// Public routes
	r.POST("/login", h.Login)
	r.POST("/register", h.Register)
	r.POST("/auth", h.ResolveUser)
	r.GET("/auth", h.GetUser)
	r.POST("/payment", h.CreatePaymentSession)
	r.POST("/telegram/webhook", h.TelegramWebhook)

	// Protected routes
	api := r.Group("/api")
	api.Use(middleware.JwtAuthMiddleware())
	{
		api.GET("/user/profile", h.GetProfile)
		api.GET("/user/history", h.GetUsageHistory)
		api.GET("/export", h.ExportUsage)

		admin := api.Group("/admin")
		{
			admin.GET("/users", h.GetAllUsers)
			admin.GET("/users/:id/stats", h.GetUserStats)
		}
	}

	r.Run(":8080")
}
