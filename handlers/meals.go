package handlers

import (
	"net/http"
	"strconv"

	"chef-marketplace-api/apperrors"
	"chef-marketplace-api/config"
	"chef-marketplace-api/models"
	"chef-marketplace-api/services"

	"github.com/gin-gonic/gin"
)

// ListMeals returns one price-sorted page of meals
func ListMeals(c *gin.Context) {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		respondError(c, err)
		return
	}
	limit, err := queryInt(c, "limit", services.DefaultPageLimit)
	if err != nil {
		respondError(c, err)
		return
	}
	sort := services.SortDirection(c.DefaultQuery("sort", string(services.SortAsc)))
	if sort != services.SortAsc && sort != services.SortDesc {
		respondError(c, apperrors.Validation("sort must be asc or desc"))
		return
	}

	result, err := services.NewMealService(config.DB).List(c.Request.Context(), page, limit, sort)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.Validation(key + " must be an integer")
	}
	return n, nil
}

// CreateMeal stores a new meal
func CreateMeal(c *gin.Context) {
	var meal models.Meal
	if err := c.ShouldBindJSON(&meal); err != nil {
		bindError(c, err)
		return
	}
	result, err := services.NewMealService(config.DB).Create(c.Request.Context(), &meal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// FeaturedMeals returns the first six meals for the home page
func FeaturedMeals(c *gin.Context) {
	meals, err := services.NewMealService(config.DB).Featured(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func ChefMeals(c *gin.Context) {
	meals, err := services.NewMealService(config.DB).ByChefEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func GetMeal(c *gin.Context) {
	meal, err := services.NewMealService(config.DB).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

// UpdateMeal changes only the fields present in the body
func UpdateMeal(c *gin.Context) {
	var patch models.MealPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}
	result, err := services.NewMealService(config.DB).Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func DeleteMeal(c *gin.Context) {
	result, err := services.NewMealService(config.DB).Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
