package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"household-eats-api/middleware"
	"household-eats-api/services"

	"github.com/gin-gonic/gin"
)

type SubmitReviewRequest struct {
	DishID  uint                  `json:"dish_id" binding:"required"`
	OrderID *uint                 `json:"order_id"`
	Rating  int                   `json:"rating" binding:"required"`
	Comment *string               `json:"comment"`
	Photos  []services.PhotoInput `json:"photos"`
}

// GetReviews lists reviews, optionally filtered by dish
func GetReviews(c *gin.Context) {
	var dishID *uint
	if raw := c.Query("dishId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dishId"})
			return
		}
		id := uint(parsed)
		dishID = &id
	}

	reviews, err := Reviews.List(dishID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reviews"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
}

// SubmitReview creates a review, or updates the caller's existing review
// of the same dish on the same order
func SubmitReview(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := Reviews.Submit(userID, req.DishID, req.OrderID, req.Rating, req.Comment, req.Photos)
	if err != nil {
		if errors.Is(err, services.ErrMissingField) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit review"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review saved", "review": review})
}

// DeleteReview removes a review and its photos
func DeleteReview(c *gin.Context) {
	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review id"})
		return
	}

	if err := Reviews.Delete(uint(reviewID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}
