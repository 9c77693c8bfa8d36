package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/postforge/postforge/pkg/config"
	"github.com/postforge/postforge/pkg/logging"
)

var (
	// ErrHotTierDisabled is returned when hot-tier operations are attempted
	// but no Redis is configured
	ErrHotTierDisabled = fmt.Errorf("hot tier is disabled")
)

// HotTier is an optional Redis layer in front of the persistent cache
// table. The table stays authoritative; the hot tier only accelerates
// reads. All methods are safe on a nil receiver.
type HotTier struct {
	client *redis.Client
	ctx    context.Context
}

// NewHotTier creates a new Redis hot tier, or nil when disabled
func NewHotTier(cfg *config.RedisConfig) (*HotTier, error) {
	if !cfg.Enabled {
		logging.GetLogger().Info("Redis hot tier disabled")
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.GetLogger().Info("Redis connection established")

	return &HotTier{
		client: client,
		ctx:    context.Background(),
	}, nil
}

// NamespaceKey prefixes a key with the application namespace
func (h *HotTier) NamespaceKey(key string) string {
	return "postforge:" + key
}

// Get retrieves a value from the hot tier
func (h *HotTier) Get(key string) (string, error) {
	if h == nil || h.client == nil {
		return "", ErrHotTierDisabled
	}
	return h.client.Get(h.ctx, h.NamespaceKey(key)).Result()
}

// Set stores a value in the hot tier with TTL
func (h *HotTier) Set(key string, value interface{}, ttl time.Duration) error {
	if h == nil || h.client == nil {
		return ErrHotTierDisabled
	}
	return h.client.Set(h.ctx, h.NamespaceKey(key), value, ttl).Err()
}

// Delete removes a key from the hot tier
func (h *HotTier) Delete(key string) error {
	if h == nil || h.client == nil {
		return ErrHotTierDisabled
	}
	return h.client.Del(h.ctx, h.NamespaceKey(key)).Err()
}

// Close closes the Redis connection
func (h *HotTier) Close() error {
	if h == nil || h.client == nil {
		return nil
	}
	return h.client.Close()
}

// Health checks Redis health
func (h *HotTier) Health(ctx context.Context) error {
	if h == nil || h.client == nil {
		return ErrHotTierDisabled
	}
	return h.client.Ping(ctx).Err()
}
