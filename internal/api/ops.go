package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// cacheStatsHandler returns aggregate cache effectiveness numbers
func (r *Router) cacheStatsHandler(c *gin.Context) {
	stats, err := r.cache.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to read cache stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// cacheCleanupHandler sweeps expired cache entries
func (r *Router) cacheCleanupHandler(c *gin.Context) {
	removed, err := r.cache.Cleanup(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "cache cleanup failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
