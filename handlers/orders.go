package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"household-eats-api/middleware"
	"household-eats-api/models"
	"household-eats-api/services"
	"household-eats-api/statemachine"

	"github.com/gin-gonic/gin"
)

type CreateOrderRequest struct {
	Notes *string `json:"notes"`
	Items []struct {
		DishID       uint    `json:"dish_id" binding:"required"`
		Quantity     int     `json:"quantity" binding:"required,min=1"`
		SpecialNotes *string `json:"special_notes"`
		AddedBy      *uint   `json:"added_by"`
	} `json:"items" binding:"required,min=1"`
}

// CreateOrder drains the shared cart snapshot into a new pending order
func CreateOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lines := make([]services.OrderLineInput, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, services.OrderLineInput{
			DishID:       item.DishID,
			Quantity:     item.Quantity,
			SpecialNotes: item.SpecialNotes,
			AddedBy:      item.AddedBy,
		})
	}

	order, err := Orders.Create(userID, req.Notes, lines)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingField), errors.Is(err, services.ErrNoResolvableItems):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

// GetOrders lists orders with optional user/status filters
func GetOrders(c *gin.Context) {
	var userID *uint
	if raw := c.Query("userId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid userId"})
			return
		}
		id := uint(parsed)
		userID = &id
	}
	var status *models.OrderStatus
	if raw := c.Query("status"); raw != "" {
		st := models.OrderStatus(raw)
		status = &st
	}

	orders, err := Orders.List(userID, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

type TransitionRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// TransitionOrder advances an order through the state machine. The
// capability table gates who may drive which target; the state machine
// gates legality.
func TransitionOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := middleware.GetRole(c)
	op := middleware.TransitionOperation(req.Status)
	if !middleware.Allowed(role, op) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Role '" + string(role) + "' may not set status '" + string(req.Status) + "'",
		})
		return
	}

	order, err := Orders.Transition(uint(orderID), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, statemachine.ErrInvalidTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":             "Invalid state transition",
				"reason":            err.Error(),
				"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Order status updated",
		"order_id":       order.ID,
		"current_status": req.Status,
	})
}

// DeleteOrder cascades: review photos, reviews, line items, the order
func DeleteOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	if err := Orders.Delete(uint(orderID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted", "order_id": orderID})
}
