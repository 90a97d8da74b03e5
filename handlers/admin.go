package handlers

import (
	"net/http"
	"strconv"

	"household-eats-api/config"
	"household-eats-api/middleware"
	"household-eats-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

func adminPasswordHash() (string, error) {
	var setting models.Setting
	err := config.DB.Where("key = ?", config.AdminPasswordKey).First(&setting).Error
	return setting.Value, err
}

// AdminLogin checks the admin password and issues a session token
func AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := adminPasswordHash()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Admin password not configured"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	token, err := middleware.GenerateAdminToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token})
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// AdminChangePassword rotates the admin password
func AdminChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := adminPasswordHash()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Admin password not configured"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.CurrentPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	err = config.DB.Model(&models.Setting{}).Where("key = ?", config.AdminPasswordKey).
		Update("value", string(newHash)).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// AdminGetUsers lists all users — admin only
func AdminGetUsers(c *gin.Context) {
	var users []models.User
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	query.Order("id asc").Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

type AdminUpdateUserRequest struct {
	Name             *string `json:"name"`
	IsWhitelisted    *bool   `json:"is_whitelisted"`
	ClearFingerprint bool    `json:"clear_fingerprint"`
}

// AdminUpdateUser toggles whitelisting, renames, or unbinds a device
func AdminUpdateUser(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.IsWhitelisted != nil {
		updates["is_whitelisted"] = *req.IsWhitelisted
	}
	if req.ClearFingerprint {
		updates["fingerprint"] = nil
		updates["device_name"] = ""
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated", "user": user})
}

// AdminDeleteUser removes a visitor account. The two named household
// roles are never deletable.
func AdminDeleteUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, uint(userID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if user.Role != models.RoleVisitor {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only visitor accounts can be deleted"})
		return
	}

	if err := config.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
