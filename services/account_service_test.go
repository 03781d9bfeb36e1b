package services

import (
	"context"
	"testing"

	"chef-marketplace-api/apperrors"
	"chef-marketplace-api/models"
	"chef-marketplace-api/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserIfAbsent(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewUserService(db)
	ctx := context.Background()
	sneaky := "CHEF-000001"

	res, created, err := svc.Create(ctx, &models.User{Name: "Ana", Email: "ana@example.com", Role: models.RoleAdmin, ChefID: &sneaky})
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, res.InsertedID)

	user := testutil.Reload(t, db, "ana@example.com")
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.Equal(t, models.UserStatusActive, user.Status)
	assert.Nil(t, user.ChefID)

	res, created, err = svc.Create(ctx, &models.User{Name: "Ana again", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Nil(t, res)
	assert.Equal(t, "Ana", testutil.Reload(t, db, "ana@example.com").Name)
}

func TestRoleOfDefaultsToCustomer(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewUserService(db)
	testutil.CreateUser(t, db, "boss@example.com", models.RoleAdmin)

	role, err := svc.RoleOf(context.Background(), "boss@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)

	role, err = svc.RoleOf(context.Background(), "stranger@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, role)

	_, err = svc.GetByEmail(context.Background(), "stranger@example.com")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestMarkFraud(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewUserService(db)
	user := testutil.CreateUser(t, db, "shady@example.com", models.RoleCustomer)

	res, err := svc.MarkFraud(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ModifiedCount)
	assert.True(t, testutil.Reload(t, db, "shady@example.com").IsFraud())

	res, err = svc.MarkFraud(context.Background(), "missing")
	require.NoError(t, err)
	assert.Zero(t, res.MatchedCount)
}

func TestFavoritesAddOnce(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewFavoriteService(db)
	ctx := context.Background()

	res, added, err := svc.Add(ctx, &models.Favorite{UserEmail: "eater@example.com", MealID: "meal-1", MealName: "Biryani"})
	require.NoError(t, err)
	assert.True(t, added)
	id := *res.InsertedID

	_, added, err = svc.Add(ctx, &models.Favorite{UserEmail: "eater@example.com", MealID: "meal-1"})
	require.NoError(t, err)
	assert.False(t, added)

	favs, err := svc.ByUser(ctx, "eater@example.com")
	require.NoError(t, err)
	assert.Len(t, favs, 1)

	del, err := svc.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.DeletedCount)
}

func TestReviewsLifecycle(t *testing.T) {
	svc := NewReviewService(testutil.NewDB(t))
	ctx := context.Background()

	res, err := svc.Create(ctx, &models.Review{FoodID: "meal-1", Rating: 4, Comment: "tasty"})
	require.NoError(t, err)
	id := *res.InsertedID

	comment := "very tasty"
	upd, err := svc.Update(ctx, id, &models.ReviewPatch{Comment: &comment})
	require.NoError(t, err)
	assert.Equal(t, int64(1), upd.MatchedCount)

	reviews, err := svc.ByMeal(ctx, "meal-1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "very tasty", reviews[0].Comment)
	assert.Equal(t, 4.0, reviews[0].Rating)

	del, err := svc.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.DeletedCount)
}

func TestAdminStats(t *testing.T) {
	db := testutil.NewDB(t)
	_, orderID := setupOrder(t, db)
	payments := NewPaymentService(db, &fakeGateway{}, "usd")
	_, err := payments.Record(context.Background(), &models.Payment{OrderID: orderID, TransactionID: "pi_1", Price: 20})
	require.NoError(t, err)
	_, err = payments.Record(context.Background(), &models.Payment{OrderID: orderID, TransactionID: "pi_2", Price: 5.5})
	require.NoError(t, err)
	_, err = NewMealService(db).Create(context.Background(), &models.Meal{FoodName: "Dal", Price: 4})
	require.NoError(t, err)

	stats, err := NewStatsService(db).Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &AdminStats{Users: 2, Meals: 1, Orders: 1, Revenue: 25.5}, stats)
}

func TestChefIDCandidateFormat(t *testing.T) {
	gen := NewChefIDGenerator()
	for i := 0; i < 50; i++ {
		assert.Regexp(t, chefIDPattern, gen.Candidate())
	}
	low := NewChefIDGeneratorWithSource(func(int) int { return 0 }, 1)
	high := NewChefIDGeneratorWithSource(func(n int) int { return n - 1 }, 1)
	assert.Equal(t, "CHEF-100000", low.Candidate())
	assert.Equal(t, "CHEF-999999", high.Candidate())
}

func TestPromoteAdmin(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewUserService(db)
	testutil.CreateUser(t, db, "cook@example.com", models.RoleCustomer)

	created, err := svc.PromoteAdmin(context.Background(), "cook@example.com")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, models.RoleAdmin, testutil.Reload(t, db, "cook@example.com").Role)

	created, err = svc.PromoteAdmin(context.Background(), "boss@example.com")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.RoleAdmin, testutil.Reload(t, db, "boss@example.com").Role)
}
