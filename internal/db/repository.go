package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/postforge/postforge/internal/models"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CacheRepository provides response-cache database operations
type CacheRepository struct {
	*Repository
}

// NewCacheRepository creates a new cache repository
func NewCacheRepository(repo *Repository) *CacheRepository {
	return &CacheRepository{Repository: repo}
}

// GetFresh retrieves a cache entry by key if it has not expired.
// Expiry is enforced by the read predicate; expired rows stay in place
// until the cleanup sweep.
func (r *CacheRepository) GetFresh(ctx context.Context, key string, now time.Time) (*models.CacheEntry, error) {
	var entry models.CacheEntry
	if err := r.db.WithContext(ctx).
		Where("cache_key = ? AND expires_at > ?", key, now).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// Upsert inserts or fully replaces a cache entry by key
func (r *CacheRepository) Upsert(ctx context.Context, entry *models.CacheEntry) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cache_key"}},
			UpdateAll: true,
		}).
		Create(entry).Error
}

// RecordHit increments the hit counter and stamps the last hit time.
// A no-op if the row was deleted between lookup and update.
func (r *CacheRepository) RecordHit(ctx context.Context, key string, now time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.CacheEntry{}).
		Where("cache_key = ?", key).
		Updates(map[string]interface{}{
			"hit_count":   gorm.Expr("hit_count + 1"),
			"last_hit_at": now,
		}).Error
}

// DeleteExpired removes all entries past their expiry and returns the count
func (r *CacheRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&models.CacheEntry{})
	return result.RowsAffected, result.Error
}

// Totals returns the entry count and the sum of hit counters
func (r *CacheRepository) Totals(ctx context.Context) (int64, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.CacheEntry{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}

	var hits struct {
		TotalHits int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.CacheEntry{}).
		Select("COALESCE(SUM(hit_count), 0) AS total_hits").
		Scan(&hits).Error; err != nil {
		return 0, 0, err
	}
	return total, hits.TotalHits, nil
}

// VersionRepository provides post-version database operations
type VersionRepository struct {
	*Repository
}

// NewVersionRepository creates a new version repository
func NewVersionRepository(repo *Repository) *VersionRepository {
	return &VersionRepository{Repository: repo}
}

// MaxVersion returns the highest version number for a post, 0 if none exist
func (r *VersionRepository) MaxVersion(ctx context.Context, postID string) (int, error) {
	var result struct {
		MaxVersion int
	}
	if err := r.db.WithContext(ctx).
		Model(&models.PostVersion{}).
		Select("COALESCE(MAX(version_number), 0) AS max_version").
		Where("post_id = ?", postID).
		Scan(&result).Error; err != nil {
		return 0, err
	}
	return result.MaxVersion, nil
}

// Create appends a new version row
func (r *VersionRepository) Create(ctx context.Context, version *models.PostVersion) error {
	return r.db.WithContext(ctx).Create(version).Error
}

// GetByNumber retrieves a specific version of a post
func (r *VersionRepository) GetByNumber(ctx context.Context, postID string, versionNumber int) (*models.PostVersion, error) {
	var version models.PostVersion
	if err := r.db.WithContext(ctx).
		Where("post_id = ? AND version_number = ?", postID, versionNumber).
		First(&version).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &version, nil
}

// ListByPost retrieves all versions of a post, newest first
func (r *VersionRepository) ListByPost(ctx context.Context, postID string) ([]*models.PostVersion, error) {
	var versions []*models.PostVersion
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("version_number DESC").
		Find(&versions).Error; err != nil {
		return nil, err
	}
	return versions, nil
}

// DeleteBelow removes all versions of a post older than the given number
func (r *VersionRepository) DeleteBelow(ctx context.Context, postID string, versionNumber int) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("post_id = ? AND version_number < ?", postID, versionNumber).
		Delete(&models.PostVersion{})
	return result.RowsAffected, result.Error
}

// PostRepository provides post-related database operations
type PostRepository struct {
	*Repository
}

// NewPostRepository creates a new post repository
func NewPostRepository(repo *Repository) *PostRepository {
	return &PostRepository{Repository: repo}
}

// GetByID retrieves a post by ID
func (r *PostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create creates a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// Update updates a post
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// PlanRepository provides plan-related database operations
type PlanRepository struct {
	*Repository
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(repo *Repository) *PlanRepository {
	return &PlanRepository{Repository: repo}
}

// GetByTier retrieves a plan by tier name
func (r *PlanRepository) GetByTier(ctx context.Context, tier string) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.WithContext(ctx).First(&plan, "tier = ?", tier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

// Ensure inserts a plan row if it does not exist yet
func (r *PlanRepository) Ensure(ctx context.Context, plan *models.Plan) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tier"}},
			DoNothing: true,
		}).
		Create(plan).Error
}

// HashtagRepository provides hashtag-insight database operations
type HashtagRepository struct {
	*Repository
}

// NewHashtagRepository creates a new hashtag repository
func NewHashtagRepository(repo *Repository) *HashtagRepository {
	return &HashtagRepository{Repository: repo}
}

// ReplaceForPost replaces all insights for a post with a new batch
func (r *HashtagRepository) ReplaceForPost(ctx context.Context, postID string, insights []*models.HashtagInsight) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.HashtagInsight{}).Error; err != nil {
			return err
		}
		if len(insights) == 0 {
			return nil
		}
		return tx.Create(insights).Error
	})
}

// ListByPost retrieves all insights for a post
func (r *HashtagRepository) ListByPost(ctx context.Context, postID string) ([]*models.HashtagInsight, error) {
	var insights []*models.HashtagInsight
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("relevance_score DESC").
		Find(&insights).Error; err != nil {
		return nil, err
	}
	return insights, nil
}
