package api

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/postforge/postforge/internal/cache"
	"github.com/postforge/postforge/internal/generator"
	"github.com/postforge/postforge/internal/hashtag"
	"github.com/postforge/postforge/internal/models"
	"github.com/postforge/postforge/internal/scoring"
)

// GenerateRequest is the inbound generation descriptor
type GenerateRequest struct {
	Topic        string `json:"topic" binding:"required"`
	Tone         string `json:"tone" binding:"required"`
	Audience     string `json:"audience"`
	Length       string `json:"length" binding:"required"`
	CallToAction string `json:"call_to_action"`
	TemplateID   string `json:"template_id"`
	PlanTier     string `json:"plan_tier"`
}

// GenerateResponse carries the generated or cached artifact
type GenerateResponse struct {
	PostID    string             `json:"post_id"`
	Content   string             `json:"content"`
	Hashtags  string             `json:"hashtags"`
	Breakdown *scoring.Breakdown `json:"engagement"`
	Analyses  []hashtag.Analysis `json:"hashtag_analyses"`
	Provider  string             `json:"provider,omitempty"`
	Cached    bool               `json:"cached"`
}

// generateHandler serves the full generation pipeline: cache lookup,
// provider chain on miss, scoring, hashtag analysis, and best-effort
// cache write plus the initial version append.
func (r *Router) generateHandler(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "topic, tone and length are required")
		return
	}

	tier := req.PlanTier
	if tier == "" {
		tier = models.PlanTierFree
	}
	plan, err := r.plans.GetByTier(c.Request.Context(), tier)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to resolve plan")
		return
	}
	if plan == nil {
		respondError(c, http.StatusBadRequest, "unknown plan tier")
		return
	}

	descriptor := cache.Descriptor{
		Topic:        req.Topic,
		Tone:         req.Tone,
		Audience:     req.Audience,
		Length:       req.Length,
		CallToAction: req.CallToAction,
		TemplateID:   req.TemplateID,
	}

	var (
		content  string
		hashtags string
		provider string
		cached   bool
	)
	if entry, found := r.cache.Get(c.Request.Context(), descriptor); found {
		content = entry.Content
		hashtags = entry.Hashtags
		cached = true
	} else {
		content, provider, err = r.chain.Generate(c.Request.Context(), generator.Params{
			Topic:        req.Topic,
			Tone:         req.Tone,
			Audience:     req.Audience,
			Length:       req.Length,
			CallToAction: req.CallToAction,
		})
		if err != nil {
			respondError(c, http.StatusBadGateway, "content generation failed")
			return
		}
		hashtags = strings.Join(hashtag.Extract(content), " ")
	}

	breakdown := scoring.Score(content, hashtags)

	post := &models.Post{
		ID:              uuid.NewString(),
		Topic:           req.Topic,
		Tone:            req.Tone,
		Content:         content,
		Hashtags:        hashtags,
		EngagementScore: sql.NullInt64{Int64: int64(breakdown.Score), Valid: true},
		PlanTier:        tier,
	}
	if err := r.posts.Create(c.Request.Context(), post); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to persist post")
		return
	}

	if _, err := r.ledger.CreateVersion(c.Request.Context(), post.ID, content, hashtags,
		&breakdown.Score, models.ChangeTypeInitial, "Initial generation"); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to record initial version")
		return
	}

	analyses := r.hashtags.AnalyzeForPost(c.Request.Context(), post.ID, hashtags, content, plan.HashtagLimit)

	if !cached {
		r.cache.Set(c.Request.Context(), descriptor, cache.Payload{
			Content:         content,
			Hashtags:        hashtags,
			EngagementScore: &breakdown.Score,
		})
	}

	r.logger.Info("Generated post",
		zap.String("post_id", post.ID),
		zap.Bool("cached", cached),
		zap.String("provider", provider),
		zap.Int("score", breakdown.Score))

	c.JSON(http.StatusOK, GenerateResponse{
		PostID:    post.ID,
		Content:   content,
		Hashtags:  hashtags,
		Breakdown: breakdown,
		Analyses:  analyses,
		Provider:  provider,
		Cached:    cached,
	})
}

// ScoreRequest asks for an engagement breakdown of arbitrary content
type ScoreRequest struct {
	Content  string `json:"content" binding:"required"`
	Hashtags string `json:"hashtags"`
}

// scoreHandler scores content without persisting anything
func (r *Router) scoreHandler(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "content is required")
		return
	}

	c.JSON(http.StatusOK, scoring.Score(req.Content, req.Hashtags))
}
