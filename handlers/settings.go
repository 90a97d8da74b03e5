package handlers

import (
	"net/http"

	"household-eats-api/config"
	"household-eats-api/models"

	"github.com/gin-gonic/gin"
)

// GetSettings returns the flat key/value settings, minus secrets
func GetSettings(c *gin.Context) {
	var settings []models.Setting
	if err := config.DB.Find(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}

	values := map[string]string{}
	for _, s := range settings {
		if s.Key == config.AdminPasswordKey {
			continue
		}
		values[s.Key] = s.Value
	}
	c.JSON(http.StatusOK, gin.H{"settings": values})
}

type UpdateSettingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// AdminUpdateSetting upserts one settings row — admin only
func AdminUpdateSetting(c *gin.Context) {
	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Key == config.AdminPasswordKey {
		c.JSON(http.StatusForbidden, gin.H{"error": "Use the password endpoint to change the admin password"})
		return
	}

	setting := models.Setting{Key: req.Key, Value: req.Value}
	err := config.DB.Save(&setting).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save setting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Setting saved", "setting": setting})
}
