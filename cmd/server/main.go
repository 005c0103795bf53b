package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/peaceseal/peaceseal-backend/config"
	"github.com/peaceseal/peaceseal-backend/internal/app/controller"
	"github.com/peaceseal/peaceseal-backend/internal/app/repository"
	"github.com/peaceseal/peaceseal-backend/internal/app/service"
	"github.com/peaceseal/peaceseal-backend/internal/db"
	"github.com/peaceseal/peaceseal-backend/internal/middleware"
	"github.com/peaceseal/peaceseal-backend/internal/router"
	"github.com/peaceseal/peaceseal-backend/internal/scheduler"
	"github.com/peaceseal/peaceseal-backend/internal/storage"
	"github.com/peaceseal/peaceseal-backend/pkg/logger"
	"github.com/peaceseal/peaceseal-backend/pkg/mailer"
	"github.com/peaceseal/peaceseal-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Peace Seal Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional; the directory falls back to the database when
	// the cache is unavailable.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, directory caching disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close redis connection", err)
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	companyRepo := repository.NewCompanyRepository(db.GetDB())
	questionnaireRepo := repository.NewQuestionnaireRepository(db.GetDB())
	historyRepo := repository.NewHistoryRepository(db.GetDB())
	paymentRepo := repository.NewPaymentRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())
	evaluationRepo := repository.NewEvaluationRepository(db.GetDB())
	issueRepo := repository.NewIssueRepository(db.GetDB())

	// Outbound email. Degrades to logging when SMTP is not configured.
	mail := mailer.NewFromEnv()

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	companyService := service.NewCompanyService(companyRepo, historyRepo, paymentRepo, userRepo, mail)
	questionnaireService := service.NewQuestionnaireService(questionnaireRepo, companyRepo)
	reviewService := service.NewReviewService(reviewRepo, companyRepo, mail)
	evaluationService := service.NewEvaluationService(
		evaluationRepo,
		reviewRepo,
		issueRepo,
		companyRepo,
		historyRepo,
		userRepo,
		reviewService,
		mail,
	)
	directoryService := service.NewDirectoryService(companyRepo)
	adminService := service.NewAdminService(companyRepo, issueRepo)

	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	companyController := controller.NewCompanyController(companyService, questionnaireService, authService)
	reviewController := controller.NewReviewController(reviewService)
	evaluationController := controller.NewEvaluationController(evaluationService, companyService)
	directoryController := controller.NewDirectoryController(directoryService)
	adminController := controller.NewAdminController(adminService)
	uploadController := controller.NewUploadController(s3Storage, questionnaireService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		companyController,
		reviewController,
		evaluationController,
		directoryController,
		adminController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Daily expiry sweep and overdue-response processing
	certScheduler := scheduler.NewCertificationScheduler(companyService, evaluationService)
	if err := certScheduler.Start(); err != nil {
		logger.Fatal("Failed to start certification scheduler", err)
	}
	defer certScheduler.Stop()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
