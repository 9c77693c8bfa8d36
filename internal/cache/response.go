package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/postforge/postforge/internal/models"
	"github.com/postforge/postforge/pkg/config"
	"github.com/postforge/postforge/pkg/logging"
	"github.com/postforge/postforge/pkg/telemetry"
)

// Store is the persistent backing of the response cache
type Store interface {
	GetFresh(ctx context.Context, key string, now time.Time) (*models.CacheEntry, error)
	Upsert(ctx context.Context, entry *models.CacheEntry) error
	RecordHit(ctx context.Context, key string, now time.Time) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	Totals(ctx context.Context) (int64, int64, error)
}

// Payload is the generated artifact stored against a descriptor
type Payload struct {
	Content         string
	Hashtags        string
	EngagementScore *int
}

// Stats summarizes cache effectiveness
type Stats struct {
	Total            int64   `json:"total"`
	TotalHits        int64   `json:"total_hits"`
	AvgHits          float64 `json:"avg_hits"`
	EstimatedSavings float64 `json:"estimated_savings"`
}

// ResponseCache caches generation responses keyed by request fingerprint.
// Writes are best-effort: a storage failure degrades to "not cached" and
// never reaches the caller's primary flow.
type ResponseCache struct {
	store    Store
	hot      *HotTier
	ttlDays  int
	unitCost float64
	logger   *zap.Logger
	now      func() time.Time
}

// NewResponseCache creates a new response cache service
func NewResponseCache(store Store, hot *HotTier, cfg *config.CacheConfig) *ResponseCache {
	return &ResponseCache{
		store:    store,
		hot:      hot,
		ttlDays:  cfg.TTLDays,
		unitCost: cfg.UnitCost,
		logger:   logging.WithComponent("response-cache"),
		now:      time.Now,
	}
}

// Get looks up a cached response for the descriptor. The second return
// value reports whether a fresh entry was found; absent and expired both
// read as a miss. On a hit the hit counter is bumped as a side effect;
// a failure to record the hit is logged, never surfaced.
func (c *ResponseCache) Get(ctx context.Context, d Descriptor) (*models.CacheEntry, bool) {
	ctx, span := telemetry.StartSpan(ctx, "cache.get")
	defer span.End()

	key := DeriveKey(d)
	now := c.now().UTC()

	if entry := c.hotGet(key); entry != nil {
		span.SetAttributes(attribute.Bool("cache.hit", true), attribute.String("cache.tier", "hot"))
		c.bumpHit(ctx, entry, now)
		return entry, true
	}

	entry, err := c.store.GetFresh(ctx, key, now)
	if err != nil {
		c.logger.Warn("Cache lookup failed, treating as miss",
			zap.String("cache_key", key),
			zap.Error(err))
		span.SetAttributes(attribute.Bool("cache.hit", false))
		return nil, false
	}
	if entry == nil {
		span.SetAttributes(attribute.Bool("cache.hit", false))
		return nil, false
	}

	span.SetAttributes(attribute.Bool("cache.hit", true), attribute.String("cache.tier", "sql"))
	c.bumpHit(ctx, entry, now)
	c.hotSet(entry, now)

	return entry, true
}

// Set upserts a response under the descriptor's fingerprint using the
// configured TTL. Overwriting resets the hit counter: the content changed,
// so prior hit bookkeeping described a different artifact.
func (c *ResponseCache) Set(ctx context.Context, d Descriptor, payload Payload) {
	c.SetWithTTL(ctx, d, payload, c.ttlDays)
}

// SetWithTTL upserts a response with an explicit TTL in days
func (c *ResponseCache) SetWithTTL(ctx context.Context, d Descriptor, payload Payload, ttlDays int) {
	ctx, span := telemetry.StartSpan(ctx, "cache.set")
	defer span.End()

	n := d.Normalize()
	key := DeriveKey(d)
	now := c.now().UTC()

	entry := &models.CacheEntry{
		CacheKey:     key,
		Topic:        n.Topic,
		Tone:         n.Tone,
		Audience:     n.Audience,
		Length:       n.Length,
		CallToAction: n.CallToAction,
		TemplateID:   n.TemplateID,
		Content:      payload.Content,
		Hashtags:     payload.Hashtags,
		HitCount:     0,
		CreatedAt:    now,
		ExpiresAt:    now.Add(time.Duration(ttlDays) * 24 * time.Hour),
	}
	if payload.EngagementScore != nil {
		entry.EngagementScore = sql.NullInt64{Int64: int64(*payload.EngagementScore), Valid: true}
	}

	if err := c.store.Upsert(ctx, entry); err != nil {
		c.logger.Warn("Cache write failed, response not cached",
			zap.String("cache_key", key),
			zap.Error(err))
		return
	}

	c.hotSet(entry, now)
}

// Cleanup deletes all entries past their expiry and returns the number
// removed. Idempotent; safe to run concurrently with reads and writes.
func (c *ResponseCache) Cleanup(ctx context.Context) (int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "cache.cleanup")
	defer span.End()

	count, err := c.store.DeleteExpired(ctx, c.now().UTC())
	if err != nil {
		return 0, err
	}

	c.logger.Info("Cache cleanup completed", zap.Int64("removed", count))
	return count, nil
}

// GetStats returns aggregate cache statistics. The savings figure is
// total hits times the configured cost of one avoided upstream call.
func (c *ResponseCache) GetStats(ctx context.Context) (*Stats, error) {
	ctx, span := telemetry.StartSpan(ctx, "cache.stats")
	defer span.End()

	total, totalHits, err := c.store.Totals(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Total:            total,
		TotalHits:        totalHits,
		EstimatedSavings: float64(totalHits) * c.unitCost,
	}
	if total > 0 {
		stats.AvgHits = float64(totalHits) / float64(total)
	}
	return stats, nil
}

// bumpHit records the hit against the persistent row and reflects it in
// the returned entry. Best-effort: the row may already be gone if the
// cleanup sweep raced this read.
func (c *ResponseCache) bumpHit(ctx context.Context, entry *models.CacheEntry, now time.Time) {
	if err := c.store.RecordHit(ctx, entry.CacheKey, now); err != nil {
		c.logger.Warn("Failed to record cache hit",
			zap.String("cache_key", entry.CacheKey),
			zap.Error(err))
		return
	}
	entry.HitCount++
	entry.LastHitAt = sql.NullTime{Time: now, Valid: true}
}

// hotGet reads an entry from the Redis tier, nil on any miss or failure
func (c *ResponseCache) hotGet(key string) *models.CacheEntry {
	raw, err := c.hot.Get(key)
	if err != nil {
		return nil
	}
	var entry models.CacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		c.logger.Warn("Corrupt hot-tier entry, ignoring",
			zap.String("cache_key", key),
			zap.Error(err))
		return nil
	}
	return &entry
}

// hotSet mirrors an entry into the Redis tier for the remainder of its
// freshness window. Best-effort.
func (c *ResponseCache) hotSet(entry *models.CacheEntry, now time.Time) {
	remaining := entry.ExpiresAt.Sub(now)
	if remaining <= 0 {
		return
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := c.hot.Set(entry.CacheKey, raw, remaining); err != nil && err != ErrHotTierDisabled {
		c.logger.Warn("Failed to populate hot tier",
			zap.String("cache_key", entry.CacheKey),
			zap.Error(err))
	}
}
