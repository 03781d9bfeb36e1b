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

type ResolveRoleRequestBody struct {
	Status models.RequestStatus `json:"status" binding:"required"`
}

// ListRoleRequests returns every role request, newest first (admin only)
func ListRoleRequests(c *gin.Context) {
	requests, err := services.NewRoleRequestService(config.DB).List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// SubmitRoleRequest files a request to become chef or admin. The request is
// filed for the caller unless it names another email.
func SubmitRoleRequest(c *gin.Context) {
	var req models.RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if req.TargetEmail() == "" {
		req.UserEmail = middleware.GetEmail(c)
	}

	result, err := services.NewRoleRequestService(config.DB).Submit(c.Request.Context(), &req)
	if apperrors.HasCode(err, apperrors.CodeConflict) {
		c.JSON(http.StatusOK, gin.H{"message": "Request already pending", "success": false})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result, "success": true})
}

// ResolveRoleRequest approves or rejects a pending request (admin only)
func ResolveRoleRequest(c *gin.Context) {
	var req ResolveRoleRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := services.NewRoleRequestService(config.DB).
		Resolve(c.Request.Context(), c.Param("id"), req.Status, middleware.GetEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
