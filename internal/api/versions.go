package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/postforge/postforge/internal/models"
	"github.com/postforge/postforge/internal/scoring"
	"github.com/postforge/postforge/internal/version"
)

// CreateVersionRequest records an edit to an existing post
type CreateVersionRequest struct {
	Content     string `json:"content" binding:"required"`
	Hashtags    string `json:"hashtags"`
	ChangeType  string `json:"change_type"`
	Description string `json:"description"`
}

var validChangeTypes = map[string]bool{
	models.ChangeTypeInitial:    true,
	models.ChangeTypeRegenerate: true,
	models.ChangeTypeRefine:     true,
	models.ChangeTypeManualEdit: true,
}

// createVersionHandler persists an edit: updates the live post, appends
// a version, and applies the plan's retention limit
func (r *Router) createVersionHandler(c *gin.Context) {
	postID := c.Param("id")

	var req CreateVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "content is required")
		return
	}

	changeType := req.ChangeType
	if changeType == "" {
		changeType = models.ChangeTypeManualEdit
	}
	if !validChangeTypes[changeType] {
		respondError(c, http.StatusBadRequest, "invalid change_type")
		return
	}

	post, err := r.posts.GetByID(c.Request.Context(), postID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch post")
		return
	}
	if post == nil {
		respondError(c, http.StatusNotFound, "post not found")
		return
	}

	breakdown := scoring.Score(req.Content, req.Hashtags)

	post.Content = req.Content
	post.Hashtags = req.Hashtags
	post.EngagementScore = sql.NullInt64{Int64: int64(breakdown.Score), Valid: true}
	if err := r.posts.Update(c.Request.Context(), post); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to update post")
		return
	}

	v, err := r.ledger.CreateVersion(c.Request.Context(), postID, req.Content, req.Hashtags,
		&breakdown.Score, changeType, req.Description)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to append version")
		return
	}

	if err := r.ledger.ApplyPlanRetention(c.Request.Context(), postID); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to enforce retention")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"version":    v.VersionNumber,
		"engagement": breakdown,
	})
}

// listVersionsHandler returns a post's history, newest first
func (r *Router) listVersionsHandler(c *gin.Context) {
	versions, err := r.ledger.ListVersions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list versions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"versions": versions})
}

// rollbackHandler restores the live post to an earlier version
func (r *Router) rollbackHandler(c *gin.Context) {
	postID := c.Param("id")

	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number < 1 {
		respondError(c, http.StatusBadRequest, "invalid version number")
		return
	}

	v, err := r.ledger.Rollback(c.Request.Context(), postID, number)
	if err != nil {
		switch {
		case errors.Is(err, version.ErrVersionNotFound), errors.Is(err, version.ErrPostNotFound):
			respondError(c, http.StatusNotFound, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "rollback failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"version":     v.VersionNumber,
		"rolled_back": number,
	})
}
