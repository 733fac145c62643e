package handlers

import (
	"net/http"

	"vijayfix/utils"

	"github.com/gin-gonic/gin"
)

// Health reports liveness and, when configured, the diagnosis cache status.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Hi, I'm VijayFix",
		"checks":  utils.GetHealthStatus(),
	})
}
