package handlers

import (
	"net/http"

	"chef-marketplace-api/models"
	"chef-marketplace-api/statemachine"

	"github.com/gin-gonic/gin"
)

func Welcome(c *gin.Context) {
	c.String(http.StatusOK, "Chef server is running...")
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Chef Marketplace API",
		"version": "1.0.0",
	})
}

// GetStateMachineInfo describes the order and role request lifecycles
func GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"orders": gin.H{
			"transitions":     statemachine.GetAllTransitions(),
			"terminal_states": []models.OrderStatus{models.OrderDelivered, models.OrderCancelled},
			"note":            "admin may perform any listed transition",
		},
		"role_requests": gin.H{
			"transitions":     statemachine.RoleRequestTransitions(),
			"terminal_states": []models.RequestStatus{models.RequestApproved, models.RequestRejected},
		},
	})
}
