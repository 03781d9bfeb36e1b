package handlers

import (
	"net/http"

	"chef-marketplace-api/config"
	"chef-marketplace-api/models"
	"chef-marketplace-api/services"

	"github.com/gin-gonic/gin"
)

func ListReviews(c *gin.Context) {
	reviews, err := services.NewReviewService(config.DB).List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func MealReviews(c *gin.Context) {
	reviews, err := services.NewReviewService(config.DB).ByMeal(c.Request.Context(), c.Param("mealId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func CreateReview(c *gin.Context) {
	var review models.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		bindError(c, err)
		return
	}
	result, err := services.NewReviewService(config.DB).Create(c.Request.Context(), &review)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateReview edits the rating and/or comment
func UpdateReview(c *gin.Context) {
	var patch models.ReviewPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}
	result, err := services.NewReviewService(config.DB).Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func DeleteReview(c *gin.Context) {
	result, err := services.NewReviewService(config.DB).Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
