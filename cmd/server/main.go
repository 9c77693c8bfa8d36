package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/postforge/postforge/internal/api"
	"github.com/postforge/postforge/internal/cache"
	"github.com/postforge/postforge/internal/db"
	"github.com/postforge/postforge/internal/models"
	"github.com/postforge/postforge/pkg/config"
	"github.com/postforge/postforge/pkg/logging"
	"github.com/postforge/postforge/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting Postforge API Server")

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	// Connect to the database
	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := migrate(database, cfg); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Optional Redis hot tier
	hot, err := cache.NewHotTier(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer hot.Close()

	// Create Gin router
	if cfg.Logging.Level == "DEBUG" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	router := api.NewRouter(database, hot, cfg)
	router.SetupRoutes(engine)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: engine,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// migrate creates the schema and seeds the plan tiers from config
func migrate(database *db.DB, cfg *config.Config) error {
	if err := database.AutoMigrate(
		&models.CacheEntry{},
		&models.Post{},
		&models.PostVersion{},
		&models.HashtagInsight{},
		&models.Plan{},
	); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	plans := db.NewPlanRepository(db.NewRepository(database.DB))
	for _, plan := range []*models.Plan{
		{Tier: models.PlanTierFree, VersionLimit: cfg.Plans.FreeVersionLimit, HashtagLimit: cfg.Plans.FreeHashtagLimit},
		{Tier: models.PlanTierPro, VersionLimit: cfg.Plans.ProVersionLimit, HashtagLimit: cfg.Plans.ProHashtagLimit},
	} {
		if err := plans.Ensure(ctx, plan); err != nil {
			return err
		}
	}
	return nil
}
