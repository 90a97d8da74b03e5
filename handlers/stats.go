package handlers

import (
	"net/http"

	"household-eats-api/services"

	"github.com/gin-gonic/gin"
)

// GetStats returns the composite statistics object. The optional window
// query restricts the spice trend to a trailing period.
func GetStats(c *gin.Context) {
	window := services.WindowAll
	switch c.Query("window") {
	case "1m":
		window = services.WindowMonth
	case "3m":
		window = services.Window3Months
	case "6m":
		window = services.Window6Months
	case "", "all":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid window. Must be: 1m, 3m, 6m or all"})
		return
	}

	summary, err := Stats.Summary(window)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
