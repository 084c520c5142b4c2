package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"arkiv/internal/config"
	"arkiv/internal/database"
	"arkiv/internal/handler"
	"arkiv/internal/middleware"
	"arkiv/internal/notify"
	"arkiv/internal/repository/sqlite"
	"arkiv/internal/retention"
	"arkiv/internal/service"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}

	logOutput := io.Writer(os.Stdout)
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.MaxLogFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"database", cfg.DatabasePath,
	)

	// The JWT secret must survive restarts in production; generate an
	// ephemeral one for dev convenience only.
	if cfg.JWTSecret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			log.Fatalf("Failed to generate JWT secret: %v", err)
		}
		cfg.JWTSecret = hex.EncodeToString(buf)
		logger.Warn("JWT_SECRET not set, generated an ephemeral secret; tokens will not survive restarts")
	}
	if cfg.AdminKey == "" {
		logger.Warn("ADMIN_KEY not set, token issuance is disabled")
	}

	// Open database, apply schema and default settings
	dbHandle, err := database.OpenHandle(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer dbHandle.Close()

	if err := database.SeedDefaults(dbHandle.DB()); err != nil {
		log.Fatalf("Failed to seed default settings: %v", err)
	}
	logger.Info("database ready", "path", cfg.DatabasePath)

	// Load retention schedule (built-in codes unless overridden)
	schedule, err := retention.LoadSchedule(cfg.RetentionSchedulePath)
	if err != nil {
		log.Fatalf("Failed to load retention schedule: %v", err)
	}

	// Create repositories
	repoConfig := &sqlite.RepositoryConfig{
		Handle: dbHandle,
		Logger: logger,
	}
	folderRepo := sqlite.NewFolderRepository(repoConfig)
	checkoutRepo := sqlite.NewCheckoutRepository(repoConfig)
	disposalRepo := sqlite.NewDisposalRepository(repoConfig)
	departmentRepo := sqlite.NewDepartmentRepository(repoConfig)
	settingsRepo := sqlite.NewSettingsRepository(repoConfig)
	logRepo := sqlite.NewLogRepository(repoConfig)
	txManager := sqlite.NewTransactionManager(dbHandle)

	// Notification hub
	hubConfig := notify.DefaultConfig()
	hubConfig.MaxClients = cfg.SSEMaxClients
	hub := notify.NewHub(hubConfig, logger)

	// Create services
	folderService := service.NewFolderService(folderRepo, departmentRepo, settingsRepo, logRepo, txManager, schedule, hub, logger)
	checkoutService := service.NewCheckoutService(folderRepo, checkoutRepo, logRepo, txManager, hub, logger)
	disposalService := service.NewDisposalService(folderRepo, disposalRepo, logRepo, txManager, hub, logger)
	departmentService := service.NewDepartmentService(departmentRepo, logRepo, txManager, logger)
	settingsService := service.NewSettingsService(settingsRepo, logRepo, txManager, logger)
	dashboardService := service.NewDashboardService(folderRepo, checkoutRepo, disposalRepo)
	logService := service.NewLogService(logRepo)
	backupService := service.NewBackupService(dbHandle, logRepo, cfg.BackupDir, cfg.BackupKeep, logger)

	// Create handlers
	folderHandler := handler.NewFolderHandler(folderService, logger)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, logger)
	disposalHandler := handler.NewDisposalHandler(disposalService, logger)
	departmentHandler := handler.NewDepartmentHandler(departmentService, logger)
	settingsHandler := handler.NewSettingsHandler(settingsService, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, logger)
	logHandler := handler.NewLogHandler(logService, logger)
	backupHandler := handler.NewBackupHandler(backupService, logger)
	attachmentHandler := handler.NewAttachmentHandler(folderService, cfg.DataDir, logger)
	eventsHandler := handler.NewEventsHandler(hub, logger)
	authHandler := handler.NewAuthHandler(cfg.JWTSecret, cfg.AdminKey, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Auth
	mux.HandleFunc("POST /api/auth/token", authHandler.IssueToken)

	// Folder routes
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders", folderHandler.ListFolders)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)

	// Lifecycle subroutes
	mux.HandleFunc("POST /api/folders/{id}/checkout", checkoutHandler.CheckoutFolder)
	mux.HandleFunc("POST /api/folders/{id}/return", checkoutHandler.ReturnFolder)
	mux.HandleFunc("POST /api/folders/{id}/dispose", disposalHandler.DisposeFolder)
	mux.HandleFunc("GET /api/folders/{id}/eligibility", disposalHandler.GetEligibility)

	// Attachment routes
	mux.HandleFunc("POST /api/folders/{id}/attachments/{kind}", attachmentHandler.UploadAttachment)
	mux.HandleFunc("GET /api/folders/{id}/attachments/{kind}", attachmentHandler.DownloadAttachment)

	// Checkout and disposal listings
	mux.HandleFunc("GET /api/checkouts", checkoutHandler.ListCheckouts)
	mux.HandleFunc("GET /api/disposals", disposalHandler.ListDisposals)
	mux.HandleFunc("GET /api/disposals/eligible", disposalHandler.ListEligible)

	// Audit log
	mux.HandleFunc("GET /api/logs", logHandler.ListLogs)

	// Departments
	mux.HandleFunc("POST /api/departments", departmentHandler.CreateDepartment)
	mux.HandleFunc("GET /api/departments", departmentHandler.ListDepartments)
	mux.HandleFunc("DELETE /api/departments/{id}", departmentHandler.DeleteDepartment)

	// Settings
	mux.HandleFunc("GET /api/settings", settingsHandler.GetSettings)
	mux.HandleFunc("PUT /api/settings", settingsHandler.UpdateSettings)
	mux.HandleFunc("GET /api/settings/storage", settingsHandler.GetStorageStructure)

	// Dashboard
	mux.HandleFunc("GET /api/dashboard", dashboardHandler.GetStats)

	// Backup and restore
	mux.HandleFunc("POST /api/backup", backupHandler.CreateBackup)
	mux.HandleFunc("GET /api/backup/download", backupHandler.DownloadBackup)
	mux.HandleFunc("POST /api/restore", backupHandler.RestoreBackup)

	// Live notification channel
	mux.HandleFunc("GET /api/events", eventsHandler.Stream)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.Auth(cfg.JWTSecret)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "Last-Event-ID"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow long-lived SSE streams
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}

	// Close event streams before the database they report on.
	hub.Cleanup()

	logger.Info("server stopped")
}
