package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"civictrack-be/config"
	"civictrack-be/controllers"
	"civictrack-be/extract"
	"civictrack-be/middlewares"
	"civictrack-be/routes"
	"civictrack-be/services"
	"civictrack-be/storage"
	"civictrack-be/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("configuration error", zap.Error(err))
	}

	db, client, err := config.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()
	logger.Info("connected to MongoDB")

	if err := store.EnsureDepartmentIndex(db); err != nil {
		logger.Fatal("failed to create department index", zap.Error(err))
	}
	if err := store.EnsureUserIndex(db); err != nil {
		logger.Fatal("failed to create user index", zap.Error(err))
	}

	redisClient, err := config.ConnectRedis(cfg)
	if err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err))
	}
	if redisClient == nil {
		logger.Warn("REDIS_ADDRESS not set, issue rate limiting disabled")
	}

	issueStore := store.NewMongoIssueStore(db)
	departmentStore := store.NewMongoDepartmentStore(db)
	userStore := store.NewMongoUserStore(db)
	alertStore := store.NewMongoAlertStore(db)

	issueService := services.NewIssueService(issueStore, departmentStore)
	departmentService := services.NewDepartmentService(departmentStore)
	alertService := services.NewAlertService(alertStore)

	var extractor *extract.Client
	if cfg.AnthropicAPIKey != "" {
		extractor = extract.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	} else {
		logger.Warn("ANTHROPIC_API_KEY not set, quick report disabled")
	}

	evidenceStore, err := storage.NewDiskStore(cfg.UploadsDir, cfg.UploadsURLBase)
	if err != nil {
		logger.Fatal("failed to prepare uploads directory", zap.Error(err))
	}

	issueController := controllers.NewIssueController(issueService, extractor, logger)
	authController := controllers.NewAuthController(userStore, departmentStore, cfg.JWTSecret, logger)
	adminController := controllers.NewAdminController(departmentService, userStore, logger)
	alertController := controllers.NewAlertController(alertService, logger)
	uploadController := controllers.NewUploadController(evidenceStore, logger)

	auth := middlewares.AuthRequired(cfg.JWTSecret, userStore, logger)
	adminOnly := middlewares.AdminOnly()
	rateLimit := middlewares.IssueRateLimiter(redisClient, cfg.IssueRateLimit)

	r := gin.Default()

	routes.AuthRoutes(r, authController, auth)
	routes.IssueRoutes(r, issueController, auth, rateLimit)
	routes.AdminRoutes(r, adminController, auth, adminOnly)
	routes.AlertRoutes(r, alertController, auth, adminOnly)
	routes.UploadRoutes(r, uploadController, auth, cfg.UploadsDir)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	logger.Info("starting server", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
