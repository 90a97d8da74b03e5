package handlers

import (
	"net/http"
	"strconv"

	"household-eats-api/middleware"

	"github.com/gin-gonic/gin"
)

type AddToCartRequest struct {
	DishID       uint    `json:"dish_id" binding:"required"`
	Quantity     int     `json:"quantity"`
	SpecialNotes *string `json:"special_notes"`
}

// GetCart returns the full shared cart for every member to see
func GetCart(c *gin.Context) {
	lines, err := Cart.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(lines), "items": lines})
}

// AddToCart adds a dish for the caller, merging into an existing line
func AddToCart(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := Cart.AddItem(userID, req.DishID, req.Quantity, req.SpecialNotes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added to cart"})
}

type SetQuantityRequest struct {
	CartItemID uint `json:"cart_item_id" binding:"required"`
	Quantity   *int `json:"quantity" binding:"required"`
}

// SetCartQuantity overwrites a line's quantity; zero or below removes it
func SetCartQuantity(c *gin.Context) {
	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := Cart.SetQuantity(req.CartItemID, *req.Quantity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
}

// RemoveFromCart deletes one line, or the whole cart with ?all=true
func RemoveFromCart(c *gin.Context) {
	if c.Query("all") == "true" {
		if err := Cart.ClearAll(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
		return
	}

	rawID := c.Query("id")
	if rawID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing id or all param"})
		return
	}
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item id"})
		return
	}

	if err := Cart.Remove(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove from cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from cart"})
}
