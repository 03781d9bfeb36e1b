package handlers

import (
	"net/http"

	"chef-marketplace-api/config"
	"chef-marketplace-api/services"

	"github.com/gin-gonic/gin"
)

// AdminGetAllUsers returns all users (admin only)
func AdminGetAllUsers(c *gin.Context) {
	users, err := services.NewUserService(config.DB).List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// AdminMarkFraud flags an account so it can no longer order or ask for a role
func AdminMarkFraud(c *gin.Context) {
	result, err := services.NewUserService(config.DB).MarkFraud(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AdminStats returns platform totals for the dashboard
func AdminStats(c *gin.Context) {
	stats, err := services.NewStatsService(config.DB).Collect(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
