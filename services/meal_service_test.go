package services

import (
	"context"
	"fmt"
	"math"
	"testing"

	"chef-marketplace-api/apperrors"
	"chef-marketplace-api/models"
	"chef-marketplace-api/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMeals(t *testing.T, svc *MealService, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := svc.Create(context.Background(), &models.Meal{
			FoodName:  fmt.Sprintf("meal-%02d", i),
			Price:     float64(n - i),
			UserEmail: "cook@example.com",
		})
		require.NoError(t, err)
	}
}

func TestMealListPaginates(t *testing.T) {
	svc := NewMealService(testutil.NewDB(t))
	seedMeals(t, svc, 25)

	page, err := svc.List(context.Background(), 2, 10, SortAsc)
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Meals, 10)
	assert.Equal(t, 11.0, page.Meals[0].Price)
	assert.Equal(t, 20.0, page.Meals[9].Price)

	last, err := svc.List(context.Background(), 3, 10, SortAsc)
	require.NoError(t, err)
	assert.Len(t, last.Meals, 5)

	beyond, err := svc.List(context.Background(), 9, 10, SortAsc)
	require.NoError(t, err)
	assert.Empty(t, beyond.Meals)
	assert.NotNil(t, beyond.Meals)
}

func TestMealListSortsDescendingAndClampsParams(t *testing.T) {
	svc := NewMealService(testutil.NewDB(t))
	seedMeals(t, svc, 12)

	page, err := svc.List(context.Background(), 0, 0, SortDesc)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPageLimit, page.Limit)
	require.Len(t, page.Meals, DefaultPageLimit)
	assert.Equal(t, 12.0, page.Meals[0].Price)
	for i := 1; i < len(page.Meals); i++ {
		assert.GreaterOrEqual(t, page.Meals[i-1].Price, page.Meals[i].Price)
	}

	big, err := svc.List(context.Background(), 1, 5000, SortAsc)
	require.NoError(t, err)
	assert.Equal(t, MaxPageLimit, big.Limit)
}

func TestMealFeaturedReturnsSixOldest(t *testing.T) {
	svc := NewMealService(testutil.NewDB(t))
	seedMeals(t, svc, 9)

	meals, err := svc.Featured(context.Background())
	require.NoError(t, err)
	require.Len(t, meals, 6)
	assert.Equal(t, "meal-00", meals[0].FoodName)
}

func TestMealCRUD(t *testing.T) {
	svc := NewMealService(testutil.NewDB(t))
	ctx := context.Background()

	res, err := svc.Create(ctx, &models.Meal{FoodName: "Biryani", Price: 12.5, Rating: -3, UserEmail: "cook@example.com"})
	require.NoError(t, err)
	id := *res.InsertedID

	meal, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, meal.Rating)

	price := 14.0
	upd, err := svc.Update(ctx, id, &models.MealPatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, int64(1), upd.MatchedCount)

	meal, err = svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 14.0, meal.Price)
	assert.Equal(t, "Biryani", meal.FoodName)

	mine, err := svc.ByChefEmail(ctx, "cook@example.com")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	del, err := svc.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.DeletedCount)

	_, err = svc.Get(ctx, id)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	del, err = svc.Delete(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, del.DeletedCount)
}

func TestMealListClampsHugePage(t *testing.T) {
	svc := NewMealService(testutil.NewDB(t))
	seedMeals(t, svc, 3)

	page, err := svc.List(context.Background(), math.MaxInt, 10, SortAsc)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt/10, page.Page)
	assert.Empty(t, page.Meals)
	assert.Equal(t, int64(3), page.Total)
}
