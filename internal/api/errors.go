package api

import (
	"github.com/gin-gonic/gin"
)

// respondError writes a JSON error response
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
