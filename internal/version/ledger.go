// Package version maintains the append-only version history of generated
// posts. History is never mutated: rollback appends a new version carrying
// the old content, and retention pruning only ever removes the oldest rows.
package version

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/postforge/postforge/internal/models"
	"github.com/postforge/postforge/pkg/logging"
	"github.com/postforge/postforge/pkg/telemetry"
)

var (
	// ErrPostNotFound is returned when the target post does not exist
	ErrPostNotFound = errors.New("post not found")
	// ErrVersionNotFound is returned when rolling back to a version that
	// does not exist; this indicates a caller-side logic bug
	ErrVersionNotFound = errors.New("version not found")
	// ErrPlanNotFound is returned when the plan backing a retention limit
	// cannot be resolved
	ErrPlanNotFound = errors.New("plan not found")
)

// Store is the persistent backing of the version ledger
type Store interface {
	MaxVersion(ctx context.Context, postID string) (int, error)
	Create(ctx context.Context, version *models.PostVersion) error
	GetByNumber(ctx context.Context, postID string, versionNumber int) (*models.PostVersion, error)
	ListByPost(ctx context.Context, postID string) ([]*models.PostVersion, error)
	DeleteBelow(ctx context.Context, postID string, versionNumber int) (int64, error)
}

// PostStore provides access to the live post rows
type PostStore interface {
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
}

// PlanStore resolves plan tiers to their limits
type PlanStore interface {
	GetByTier(ctx context.Context, tier string) (*models.Plan, error)
}

// Ledger provides version-history operations
type Ledger struct {
	store  Store
	posts  PostStore
	plans  PlanStore
	logger *zap.Logger
	now    func() time.Time
}

// NewLedger creates a new version ledger
func NewLedger(store Store, posts PostStore, plans PlanStore) *Ledger {
	return &Ledger{
		store:  store,
		posts:  posts,
		plans:  plans,
		logger: logging.WithComponent("version-ledger"),
		now:    time.Now,
	}
}

// CreateVersion appends the next version for a post. Version numbers are
// 1-based and strictly increasing.
func (l *Ledger) CreateVersion(ctx context.Context, postID, content, hashtags string, score *int, changeType, description string) (*models.PostVersion, error) {
	ctx, span := telemetry.StartSpan(ctx, "version.create")
	defer span.End()

	max, err := l.store.MaxVersion(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current version: %w", err)
	}

	v := &models.PostVersion{
		PostID:            postID,
		VersionNumber:     max + 1,
		Content:           content,
		Hashtags:          hashtags,
		ChangeType:        changeType,
		ChangeDescription: description,
		CreatedAt:         l.now().UTC(),
	}
	if score != nil {
		v.EngagementScore = sql.NullInt64{Int64: int64(*score), Valid: true}
	}

	if err := l.store.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to append version: %w", err)
	}
	span.SetAttributes(attribute.Int("post.version", v.VersionNumber))

	l.logger.Debug("Created version",
		zap.String("post_id", postID),
		zap.Int("version", v.VersionNumber),
		zap.String("change_type", changeType))

	return v, nil
}

// Rollback restores the live post to the content of an earlier version.
// The target version itself is untouched; the restore is recorded as a
// new version appended on top of the history.
func (l *Ledger) Rollback(ctx context.Context, postID string, versionNumber int) (*models.PostVersion, error) {
	ctx, span := telemetry.StartSpan(ctx, "version.rollback")
	defer span.End()

	target, err := l.store.GetByNumber(ctx, postID, versionNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch version %d: %w", versionNumber, err)
	}
	if target == nil {
		return nil, fmt.Errorf("%w: post %s version %d", ErrVersionNotFound, postID, versionNumber)
	}

	post, err := l.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	if post == nil {
		return nil, fmt.Errorf("%w: %s", ErrPostNotFound, postID)
	}

	post.Content = target.Content
	post.Hashtags = target.Hashtags
	post.EngagementScore = target.EngagementScore
	post.UpdatedAt = l.now().UTC()
	if err := l.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	var score *int
	if target.EngagementScore.Valid {
		s := int(target.EngagementScore.Int64)
		score = &s
	}
	return l.CreateVersion(ctx, postID, target.Content, target.Hashtags, score,
		models.ChangeTypeManualEdit, fmt.Sprintf("Rolled back to version %d", versionNumber))
}

// ListVersions returns a post's history, newest first
func (l *Ledger) ListVersions(ctx context.Context, postID string) ([]*models.PostVersion, error) {
	return l.store.ListByPost(ctx, postID)
}

// EnforceRetention prunes the history down to the most recent limit
// versions. The newest rows are never touched.
func (l *Ledger) EnforceRetention(ctx context.Context, postID string, limit int) error {
	ctx, span := telemetry.StartSpan(ctx, "version.enforce_retention")
	defer span.End()

	if limit <= 0 {
		return fmt.Errorf("retention limit must be positive, got %d", limit)
	}

	max, err := l.store.MaxVersion(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to resolve current version: %w", err)
	}
	if max <= limit {
		return nil
	}

	cutoff := max - limit + 1
	removed, err := l.store.DeleteBelow(ctx, postID, cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune versions: %w", err)
	}

	if removed > 0 {
		l.logger.Debug("Pruned version history",
			zap.String("post_id", postID),
			zap.Int64("removed", removed),
			zap.Int("limit", limit))
	}
	return nil
}

// ApplyPlanRetention resolves the post's plan tier and enforces its
// version limit. Plan lookup failures propagate: an unresolvable plan
// is a data-integrity issue, not a transient condition.
func (l *Ledger) ApplyPlanRetention(ctx context.Context, postID string) error {
	post, err := l.posts.GetByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to fetch post: %w", err)
	}
	if post == nil {
		return fmt.Errorf("%w: %s", ErrPostNotFound, postID)
	}

	plan, err := l.plans.GetByTier(ctx, post.PlanTier)
	if err != nil {
		return fmt.Errorf("failed to resolve plan %q: %w", post.PlanTier, err)
	}
	if plan == nil {
		return fmt.Errorf("%w: %s", ErrPlanNotFound, post.PlanTier)
	}

	return l.EnforceRetention(ctx, postID, plan.VersionLimit)
}
