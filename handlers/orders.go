package handlers

import (
	"net/http"

	"chef-marketplace-api/apperrors"
	"chef-marketplace-api/config"
	"chef-marketplace-api/middleware"
	"chef-marketplace-api/models"
	"chef-marketplace-api/services"

	"github.com/gin-gonic/gin"
)

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

func caller(c *gin.Context) services.Caller {
	return services.Caller{Email: middleware.GetEmail(c), Role: middleware.GetRole(c)}
}

// PlaceOrder creates a pending, unpaid order for the caller
func PlaceOrder(c *gin.Context) {
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		bindError(c, err)
		return
	}
	result, err := services.NewOrderService(config.DB).Place(c.Request.Context(), &order, caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetCustomerOrders lists the orders of one customer. Customers only see their own.
func GetCustomerOrders(c *gin.Context) {
	email := c.Param("email")
	who := caller(c)
	if who.Role != models.RoleAdmin && who.Email != email {
		respondError(c, apperrors.Forbidden("forbidden access"))
		return
	}
	orders, err := services.NewOrderService(config.DB).ByCustomer(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func GetChefOrders(c *gin.Context) {
	orders, err := services.NewOrderService(config.DB).ByChef(c.Request.Context(), c.Param("chefId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus moves an order along the order state machine
func UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	result, err := services.NewOrderService(config.DB).UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
