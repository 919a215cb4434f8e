package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brokerdesk/lead-portal/internal/api"
	"github.com/brokerdesk/lead-portal/internal/auth"
	"github.com/brokerdesk/lead-portal/internal/database"
	"github.com/brokerdesk/lead-portal/internal/store"
	"github.com/brokerdesk/lead-portal/pkg/config"
	"github.com/brokerdesk/lead-portal/pkg/util"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := util.NewLogger(cfg.Server.Env)
	slog.SetDefault(logger)

	logger.Info("starting lead-portal server",
		"env", cfg.Server.Env,
		"addr", cfg.Server.Addr(),
	)

	if !cfg.Server.IsDevelopment() && cfg.JWT.Secret == "change-me-in-production" {
		logger.Error("JWT_SECRET must be set outside development")
		os.Exit(1)
	}

	// Connect to database
	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize services
	userStore := store.NewGormUserStore(db)
	leadStore := store.NewGormLeadStore(db)
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	authService := auth.NewService(userStore, jwtService)

	// Create router
	router := api.NewRouter(api.RouterConfig{
		DB:             db,
		Logger:         logger,
		JWTService:     jwtService,
		AuthService:    authService,
		UserStore:      userStore,
		LeadStore:      leadStore,
		AllowedOrigin:  cfg.CORS.AllowedOrigin,
		UploadMaxBytes: cfg.Upload.MaxSizeBytes(),
		Development:    cfg.Server.IsDevelopment(),
		RateLimitReqs:  cfg.RateLimit.Requests,
		RateLimitSecs:  cfg.RateLimit.WindowSeconds,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	// Close database connection
	sqlDB, _ := db.DB()
	sqlDB.Close()

	logger.Info("server stopped")
}
