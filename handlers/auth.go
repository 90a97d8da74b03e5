package handlers

import (
	"net/http"

	"household-eats-api/config"
	"household-eats-api/models"

	"github.com/gin-gonic/gin"
)

type DeviceAuthRequest struct {
	Role        models.UserRole `json:"role" binding:"required"`
	Fingerprint string          `json:"fingerprint" binding:"required"`
	DeviceName  string          `json:"device_name"`
}

func identityBody(user *models.User) gin.H {
	return gin.H{
		"user_id":        user.ID,
		"name":           user.Name,
		"role":           user.Role,
		"is_whitelisted": user.IsWhitelisted,
	}
}

// Authenticate binds a device fingerprint to an identity. A known device
// gets its existing user back; the two named roles bind their device on
// first login and are locked to it afterwards; anything else becomes a
// non-whitelisted visitor.
func Authenticate(c *gin.Context) {
	var req DeviceAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.User
	if err := config.DB.Where("fingerprint = ?", req.Fingerprint).First(&existing).Error; err == nil {
		c.JSON(http.StatusOK, identityBody(&existing))
		return
	}

	if req.Role == models.RoleFulfiller || req.Role == models.RoleOrderer {
		var user models.User
		if err := config.DB.Where("role = ?", req.Role).First(&user).Error; err == nil {
			devMode := config.GetEnv("DEV_MODE", "") == "true"
			if user.Fingerprint != nil && *user.Fingerprint != req.Fingerprint && !devMode {
				c.JSON(http.StatusForbidden, gin.H{
					"error": "This role is already registered to another device. Access denied.",
				})
				return
			}
			updates := map[string]interface{}{
				"fingerprint":    req.Fingerprint,
				"is_whitelisted": true,
			}
			if req.DeviceName != "" {
				updates["device_name"] = req.DeviceName
			}
			if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to bind device"})
				return
			}
			c.JSON(http.StatusOK, identityBody(&user))
			return
		}
	}

	visitor := models.User{
		Name:        "Visitor",
		Role:        models.RoleVisitor,
		Fingerprint: &req.Fingerprint,
		DeviceName:  req.DeviceName,
	}
	if err := config.DB.Create(&visitor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create visitor"})
		return
	}
	c.JSON(http.StatusOK, identityBody(&visitor))
}

// CheckAuth resolves an existing session by fingerprint
func CheckAuth(c *gin.Context) {
	fingerprint := c.Query("fingerprint")
	if fingerprint == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fingerprint"})
		return
	}

	var user models.User
	if err := config.DB.Where("fingerprint = ?", fingerprint).First(&user).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	body := identityBody(&user)
	body["authenticated"] = true
	c.JSON(http.StatusOK, body)
}
