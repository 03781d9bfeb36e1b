package handlers

import (
	"net/http"

	"chef-marketplace-api/config"
	"chef-marketplace-api/models"
	"chef-marketplace-api/services"

	"github.com/gin-gonic/gin"
)

func GetUser(c *gin.Context) {
	user, err := services.NewUserService(config.DB).GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser registers the account on first sign-in. Existing accounts are left as they are.
func CreateUser(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		bindError(c, err)
		return
	}

	result, created, err := services.NewUserService(config.DB).Create(c.Request.Context(), &user)
	if err != nil {
		respondError(c, err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "user already exists", "insertedId": nil})
		return
	}
	c.JSON(http.StatusOK, result)
}
