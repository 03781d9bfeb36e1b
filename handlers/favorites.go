package handlers

import (
	"net/http"

	"chef-marketplace-api/config"
	"chef-marketplace-api/models"
	"chef-marketplace-api/services"

	"github.com/gin-gonic/gin"
)

// AddFavorite saves a meal for the user unless it is already saved
func AddFavorite(c *gin.Context) {
	var fav models.Favorite
	if err := c.ShouldBindJSON(&fav); err != nil {
		bindError(c, err)
		return
	}
	result, added, err := services.NewFavoriteService(config.DB).Add(c.Request.Context(), &fav)
	if err != nil {
		respondError(c, err)
		return
	}
	if !added {
		c.JSON(http.StatusOK, gin.H{"message": "Already in favorites", "insertedId": nil})
		return
	}
	c.JSON(http.StatusOK, result)
}

func UserFavorites(c *gin.Context) {
	favorites, err := services.NewFavoriteService(config.DB).ByUser(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favorites)
}

func DeleteFavorite(c *gin.Context) {
	result, err := services.NewFavoriteService(config.DB).Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
