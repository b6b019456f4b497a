package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "insa-partnership-backend/internal/api/http"
	"insa-partnership-backend/internal/config"
	"insa-partnership-backend/internal/logger"
	"insa-partnership-backend/internal/repository/postgres"
	"insa-partnership-backend/internal/security"
	"insa-partnership-backend/internal/service"
	"insa-partnership-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting INSA Partnership Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Attachment Storage
	attachmentStore, err := storage.NewAttachmentStore(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize attachment storage", "error", err)
		log.Fatalf("Failed to initialize attachment storage: %v", err)
	}

	// Initialize Services
	emailService := service.NewEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	workflowService := service.NewWorkflowService(store.RequestRepository, store.PartnerRepository, store.UserRepository, emailService)
	requestService := service.NewRequestService(store.RequestRepository, store.UserRepository)
	partnerService := service.NewPartnerService(store.PartnerRepository, store.UserRepository, emailService)
	activityService := service.NewActivityService(store.ActivityRepository, store.PartnerRepository)
	userService := service.NewUserService(store.UserRepository)

	// Initialize HTTP API
	router := httpapi.NewRouter(
		tokenManager,
		httpapi.NewUserHandler(userService),
		httpapi.NewWorkflowHandler(workflowService),
		httpapi.NewRequestHandler(requestService),
		httpapi.NewPartnerHandler(partnerService),
		httpapi.NewActivityHandler(activityService),
		httpapi.NewAttachmentHandler(attachmentStore, cfg.Storage.MaxFileSize),
	)

	addr := cfg.GetServerAddress()
	logger.Info("HTTP server listening", "address", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("HTTP server stopped", "error", err)
		log.Fatalf("HTTP server stopped: %v", err)
	}
}
