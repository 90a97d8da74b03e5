package middleware

import (
	"net/http"
	"strconv"

	"household-eats-api/config"
	"household-eats-api/models"

	"github.com/gin-gonic/gin"
)

// Identity resolves the acting principal from the X-User-ID header set by
// the device-bound client and injects (userID, role, whitelisted) into the
// context. Downstream code trusts this triple and does not re-derive it.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		if raw == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "X-User-ID header required"})
			c.Abort()
			return
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid X-User-ID header"})
			c.Abort()
			return
		}
		var user models.User
		if err := config.DB.First(&user, uint(id)).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
			c.Abort()
			return
		}
		c.Set("userID", user.ID)
		c.Set("role", string(user.Role))
		c.Set("whitelisted", user.IsWhitelisted)
		c.Next()
	}
}

// GetUserID extracts caller user ID from context
func GetUserID(c *gin.Context) uint {
	val, _ := c.Get("userID")
	return val.(uint)
}

// GetRole extracts caller role from context
func GetRole(c *gin.Context) models.UserRole {
	val, _ := c.Get("role")
	return models.UserRole(val.(string))
}

// IsWhitelisted extracts the caller's order-privilege flag from context
func IsWhitelisted(c *gin.Context) bool {
	val, _ := c.Get("whitelisted")
	return val.(bool)
}
