package hashtag

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/postforge/postforge/internal/models"
	"github.com/postforge/postforge/pkg/logging"
)

// Store persists hashtag insights against a post
type Store interface {
	ReplaceForPost(ctx context.Context, postID string, insights []*models.HashtagInsight) error
}

// Service wraps analysis with best-effort persistence
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new hashtag service
func NewService(store Store) *Service {
	return &Service{
		store:  store,
		logger: logging.WithComponent("hashtag"),
		now:    time.Now,
	}
}

// AnalyzeForPost analyzes the hashtags and persists the results against
// the post. Persistence is best-effort: a storage failure is logged and
// the analyses are still returned.
func (s *Service) AnalyzeForPost(ctx context.Context, postID, hashtags, content string, limit int) []Analysis {
	analyses := Analyze(hashtags, content, limit)

	now := s.now().UTC()
	insights := make([]*models.HashtagInsight, 0, len(analyses))
	for _, a := range analyses {
		insights = append(insights, &models.HashtagInsight{
			PostID:           postID,
			Tag:              a.Tag,
			Category:         a.Category,
			RelevanceScore:   a.RelevanceScore,
			EstimatedReach:   a.EstimatedReach,
			CompetitionLevel: a.CompetitionLevel,
			CreatedAt:        now,
		})
	}

	if err := s.store.ReplaceForPost(ctx, postID, insights); err != nil {
		s.logger.Warn("Failed to persist hashtag insights",
			zap.String("post_id", postID),
			zap.Error(err))
	}

	return analyses
}
