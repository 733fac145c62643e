package middleware

import (
	"net/http"
	"strings"

	"vijayfix/models"

	"github.com/gin-gonic/gin"
)

const RoleKey = "role"

// RoleMiddleware selects the customer or technician view from the "role"
// header. It is view selection only; nothing is authenticated.
func RoleMiddleware(allowed ...models.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var role models.Sender
		switch strings.ToLower(c.GetHeader("role")) {
		case "customer":
			role = models.SenderCustomer
		case "technician":
			role = models.SenderTechnician
		default:
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"message": "Invalid or missing 'role' header. Expected 'customer' or 'technician'.",
			})
			return
		}

		if len(allowed) > 0 && !containsRole(allowed, role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "This endpoint is not available for role " + strings.ToLower(string(role)),
			})
			return
		}

		c.Set(RoleKey, role)
		c.Next()
	}
}

// RoleFrom returns the role stored by RoleMiddleware.
func RoleFrom(c *gin.Context) (models.Sender, bool) {
	v, ok := c.Get(RoleKey)
	if !ok {
		return "", false
	}
	role, ok := v.(models.Sender)
	return role, ok
}

func containsRole(list []models.Sender, role models.Sender) bool {
	for _, r := range list {
		if r == role {
			return true
		}
	}
	return false
}
