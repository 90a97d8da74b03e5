package handlers

import (
	"net/http"

	"household-eats-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetStateMachineInfo returns the full order state machine for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []string{"completed", "cancelled"},
		"description":     "Household Order Lifecycle State Machine",
	})
}
