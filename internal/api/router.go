package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/postforge/postforge/internal/cache"
	"github.com/postforge/postforge/internal/db"
	"github.com/postforge/postforge/internal/generator"
	"github.com/postforge/postforge/internal/hashtag"
	"github.com/postforge/postforge/internal/models"
	"github.com/postforge/postforge/internal/version"
	"github.com/postforge/postforge/pkg/config"
	"github.com/postforge/postforge/pkg/logging"
)

// PostStore provides the post rows the handlers read and write
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
}

// PlanStore resolves plan tiers to their limits
type PlanStore interface {
	GetByTier(ctx context.Context, tier string) (*models.Plan, error)
}

// Router sets up API routes
type Router struct {
	cache    *cache.ResponseCache
	ledger   *version.Ledger
	hashtags *hashtag.Service
	chain    *generator.Chain
	posts    PostStore
	plans    PlanStore
	logger   *zap.Logger
}

// NewRouter creates a new API router wired against the database
func NewRouter(database *db.DB, hot *cache.HotTier, cfg *config.Config) *Router {
	repo := db.NewRepository(database.DB)

	return &Router{
		cache:    cache.NewResponseCache(db.NewCacheRepository(repo), hot, &cfg.Cache),
		ledger:   version.NewLedger(db.NewVersionRepository(repo), db.NewPostRepository(repo), db.NewPlanRepository(repo)),
		hashtags: hashtag.NewService(db.NewHashtagRepository(repo)),
		chain:    generator.ChainFromConfig(&cfg.Providers),
		posts:    db.NewPostRepository(repo),
		plans:    db.NewPlanRepository(repo),
		logger:   logging.WithComponent("api-router"),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check endpoints
	engine.GET("/health", r.healthHandler)

	v1 := engine.Group("/api/v1")
	{
		v1.POST("/posts/generate", r.generateHandler)
		v1.POST("/posts/score", r.scoreHandler)

		v1.GET("/posts/:id/versions", r.listVersionsHandler)
		v1.POST("/posts/:id/versions", r.createVersionHandler)
		v1.POST("/posts/:id/versions/:number/rollback", r.rollbackHandler)

		v1.GET("/cache/stats", r.cacheStatsHandler)
		v1.POST("/cache/cleanup", r.cacheCleanupHandler)
	}
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "OK",
		"service": "postforge-api",
	})
}
