package handlers

import (
	"net/http"
	"strings"

	"chef-marketplace-api/config"
	"chef-marketplace-api/middleware"
	"chef-marketplace-api/services"

	"github.com/gin-gonic/gin"
)

type TokenRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// IssueToken signs a token for an email verified by the sign-in provider. The role
// claim comes from the stored account, customer when there is none yet.
// The endpoint trusts the upstream sign-in provider: it does not verify the caller's
// identity itself, so it must only be reachable through that provider's flow.
func IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	email := strings.TrimSpace(req.Email)

	role, err := services.NewUserService(config.DB).RoleOf(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := middleware.GenerateToken(email, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GetProfile returns the authenticated user's account
func GetProfile(c *gin.Context) {
	user, err := services.NewUserService(config.DB).GetByEmail(c.Request.Context(), middleware.GetEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
