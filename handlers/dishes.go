package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"household-eats-api/models"
	"household-eats-api/services"

	"github.com/gin-gonic/gin"
)

type CreateDishRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"` // zero is allowed: free household meals
	Category      string  `json:"category" binding:"required"`
	ImageURL      *string `json:"image_url"`
	ThumbnailURL  *string `json:"thumbnail_url"`
	IsRecommended bool    `json:"is_recommended"`
	SpiceLevel    int     `json:"spice_level" binding:"min=0,max=5"`
	PrepTime      int     `json:"prep_time"`
}

// ListDishes returns the menu with rating aggregates (public)
func ListDishes(c *gin.Context) {
	var category *string
	if raw := c.Query("category"); raw != "" {
		category = &raw
	}
	includeUnavailable := c.Query("available") == "false"

	dishes, err := Dishes.List(category, includeUnavailable)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dishes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(dishes), "dishes": dishes})
}

// CreateDish adds a menu dish (fulfiller only)
func CreateDish(c *gin.Context) {
	var req CreateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dish := models.Dish{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
		ThumbnailURL:  req.ThumbnailURL,
		IsAvailable:   true,
		IsRecommended: req.IsRecommended,
		SpiceLevel:    req.SpiceLevel,
		PrepTime:      req.PrepTime,
	}
	if err := Dishes.Create(&dish); err != nil {
		if errors.Is(err, services.ErrMissingField) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create dish"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Dish added", "dish": dish})
}

// UpdateDish edits dish fields (fulfiller only)
func UpdateDish(c *gin.Context) {
	dishID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dish id"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Only allow safe fields
	allowed := map[string]bool{
		"name": true, "description": true, "price": true, "category": true,
		"image_url": true, "thumbnail_url": true, "is_available": true,
		"is_recommended": true, "spice_level": true, "prep_time": true,
	}
	updates := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			updates[k] = v
		}
	}

	dish, err := Dishes.Update(uint(dishID), updates)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dish updated", "dish": dish})
}

// DeleteDish removes a dish from the menu (fulfiller only)
func DeleteDish(c *gin.Context) {
	dishID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dish id"})
		return
	}

	if err := Dishes.Delete(uint(dishID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete dish"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dish deleted"})
}
