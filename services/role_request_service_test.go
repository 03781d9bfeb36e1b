package services

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"testing"

	"chef-marketplace-api/apperrors"
	"chef-marketplace-api/models"
	"chef-marketplace-api/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var chefIDPattern = regexp.MustCompile(`^CHEF-\d{6}$`)

func submit(t *testing.T, svc *RoleRequestService, email, requestType string) string {
	t.Helper()
	res, err := svc.Submit(context.Background(), &models.RoleRequest{UserEmail: email, RequestType: requestType})
	require.NoError(t, err)
	require.NotNil(t, res.InsertedID)
	return *res.InsertedID
}

func loadRequest(t *testing.T, db *gorm.DB, id string) *models.RoleRequest {
	t.Helper()
	var req models.RoleRequest
	require.NoError(t, db.Where("id = ?", id).First(&req).Error)
	return &req
}

func countPending(t *testing.T, db *gorm.DB, email string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.RoleRequest{}).
		Where("user_email = ? AND request_status = ?", email, models.RequestPending).
		Count(&n).Error)
	return n
}

func TestSubmitRejectsSecondPendingRequest(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRoleRequestService(db)

	submit(t, svc, "cook@example.com", "chef")

	_, err := svc.Submit(context.Background(), &models.RoleRequest{UserEmail: "cook@example.com", RequestType: "admin"})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
	assert.Equal(t, int64(1), countPending(t, db, "cook@example.com"))
}

func TestSubmitConcurrentProducesOnePendingRequest(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRoleRequestService(db)

	const writers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Submit(context.Background(), &models.RoleRequest{UserEmail: "race@example.com", RequestType: "chef"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case apperrors.HasCode(err, apperrors.CodeConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, writers-1, conflicts)
	assert.Equal(t, int64(1), countPending(t, db, "race@example.com"))
}

func TestSubmitForcesPendingAndAllowsNewRequestAfterDecision(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRoleRequestService(db)
	testutil.CreateUser(t, db, "cook@example.com", models.RoleCustomer)

	res, err := svc.Submit(context.Background(), &models.RoleRequest{
		UserEmail:     "cook@example.com",
		RequestType:   "chef",
		RequestStatus: models.RequestApproved,
	})
	require.NoError(t, err)
	id := *res.InsertedID
	assert.Equal(t, models.RequestPending, loadRequest(t, db, id).RequestStatus)

	_, err = svc.Resolve(context.Background(), id, models.RequestRejected, "boss@example.com")
	require.NoError(t, err)

	submit(t, svc, "cook@example.com", "chef")
	assert.Equal(t, int64(1), countPending(t, db, "cook@example.com"))
}

func TestSubmitUsesLegacyEmailField(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRoleRequestService(db)

	res, err := svc.Submit(context.Background(), &models.RoleRequest{Email: "legacy@example.com", RequestType: "chef"})
	require.NoError(t, err)
	assert.Equal(t, "legacy@example.com", loadRequest(t, db, *res.InsertedID).UserEmail)

	_, err = svc.Submit(context.Background(), &models.RoleRequest{RequestType: "chef"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))
}

func TestSubmitRejectsFraudAccount(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRoleRequestService(db)
	user := testutil.CreateUser(t, db, "shady@example.com", models.RoleCustomer)
	require.NoError(t, db.Model(user).Update("status", models.UserStatusFraud).Error)

	_, err := svc.Submit(context.Background(), &models.RoleRequest{UserEmail: "shady@example.com", RequestType: "chef"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
	assert.Equal(t, int64(0), countPending(t, db, "shady@example.com"))
}

func TestResolveApproveChefGrantsRoleAndChefID(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRoleRequestService(db)
	testutil.CreateUser(t, db, "cook@example.com", models.RoleCustomer)
	id := submit(t, svc, "cook@example.com", "Chef")

	res, err := svc.Resolve(context.Background(), id, models.RequestApproved, "boss@example.com")
	require.NoError(t, err)
	assert.Equal(t, &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, res)

	user := testutil.Reload(t, db, "cook@example.com")
	assert.Equal(t, models.RoleChef, user.Role)
	require.NotNil(t, user.ChefID)
	assert.Regexp(t, chefIDPattern, *user.ChefID)

	req := loadRequest(t, db, id)
	assert.Equal(t, models.RequestApproved, req.RequestStatus)
	assert.Equal(t, "boss@example.com", req.DecidedBy)
	assert.NotNil(t, req.DecidedAt)
}

func TestResolveApproveAdminKeepsChefID(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRoleRequestService(db)
	user := testutil.CreateUser(t, db, "cook@example.com", models.RoleChef)
	require.NoError(t, db.Model(user).Update("chef_id", "CHEF-424242").Error)
	id := submit(t, svc, "cook@example.com", "admin")

	_, err := svc.Resolve(context.Background(), id, models.RequestApproved, "boss@example.com")
	require.NoError(t, err)

	reloaded := testutil.Reload(t, db, "cook@example.com")
	assert.Equal(t, models.RoleAdmin, reloaded.Role)
	require.NotNil(t, reloaded.ChefID)
	assert.Equal(t, "CHEF-424242", *reloaded.ChefID)
}

func TestResolveRejectLeavesUserUntouched(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRoleRequestService(db)
	testutil.CreateUser(t, db, "cook@example.com", models.RoleCustomer)
	before := testutil.Reload(t, db, "cook@example.com")
	id := submit(t, svc, "cook@example.com", "chef")

	_, err := svc.Resolve(context.Background(), id, models.RequestRejected, "boss@example.com")
	require.NoError(t, err)

	assert.Equal(t, models.RequestRejected, loadRequest(t, db, id).RequestStatus)
	after := testutil.Reload(t, db, "cook@example.com")
	assert.Equal(t, models.RoleCustomer, after.Role)
	assert.Nil(t, after.ChefID)
	assert.Equal(t, before.UpdatedAt.UnixNano(), after.UpdatedAt.UnixNano())
}

func TestResolveUnknownRequestIsNotFound(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRoleRequestService(db)
	testutil.CreateUser(t, db, "cook@example.com", models.RoleCustomer)

	for _, id := range []string{"4f0c9a4e-9d2b-4a53-9a53-3f2f7d1f0b11", "no-such-request"} {
		_, err := svc.Resolve(context.Background(), id, models.RequestApproved, "boss@example.com")
		assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound), id)
	}
	assert.Equal(t, models.RoleCustomer, testutil.Reload(t, db, "cook@example.com").Role)
}

func TestResolveTwiceIsRejectedAndKeepsFirstChefID(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRoleRequestService(db)
	testutil.CreateUser(t, db, "cook@example.com", models.RoleCustomer)
	id := submit(t, svc, "cook@example.com", "chef")

	_, err := svc.Resolve(context.Background(), id, models.RequestApproved, "boss@example.com")
	require.NoError(t, err)
	first := *testutil.Reload(t, db, "cook@example.com").ChefID

	_, err = svc.Resolve(context.Background(), id, models.RequestApproved, "boss@example.com")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))

	_, err = svc.Resolve(context.Background(), id, models.RequestRejected, "boss@example.com")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))

	assert.Equal(t, first, *testutil.Reload(t, db, "cook@example.com").ChefID)
	assert.Equal(t, models.RequestApproved, loadRequest(t, db, id).RequestStatus)
}

func TestResolveRejectsNonTerminalStatus(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRoleRequestService(db)
	id := submit(t, svc, "cook@example.com", "chef")

	for _, status := range []models.RequestStatus{"on-hold", models.RequestPending, ""} {
		_, err := svc.Resolve(context.Background(), id, status, "boss@example.com")
		assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed), string(status))
	}
	assert.Equal(t, models.RequestPending, loadRequest(t, db, id).RequestStatus)
}

func TestResolveFindsCanonicalAndLiteralIDs(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRoleRequestService(db)
	testutil.CreateUser(t, db, "a@example.com", models.RoleCustomer)
	testutil.CreateUser(t, db, "b@example.com", models.RoleCustomer)

	canonical := submit(t, svc, "a@example.com", "chef")
	_, err := svc.Resolve(context.Background(), strings.ToUpper(canonical), models.RequestApproved, "boss@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleChef, testutil.Reload(t, db, "a@example.com").Role)

	legacy := models.RoleRequest{ID: "legacy-42", UserEmail: "b@example.com", RequestType: "admin", RequestStatus: models.RequestPending}
	require.NoError(t, db.Create(&legacy).Error)
	_, err = svc.Resolve(context.Background(), "legacy-42", models.RequestApproved, "boss@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, testutil.Reload(t, db, "b@example.com").Role)
}

func TestResolveApproveWithoutUserStillRecordsDecision(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRoleRequestService(db)
	id := submit(t, svc, "ghost@example.com", "chef")

	res, err := svc.Resolve(context.Background(), id, models.RequestApproved, "boss@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)
	assert.Equal(t, models.RequestApproved, loadRequest(t, db, id).RequestStatus)

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Zero(t, users)
}

func TestResolveApproveUnsupportedTypeChangesNothing(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRoleRequestService(db)
	testutil.CreateUser(t, db, "cook@example.com", models.RoleCustomer)
	req := models.RoleRequest{UserEmail: "cook@example.com", RequestType: "moderator", RequestStatus: models.RequestPending}
	require.NoError(t, db.Create(&req).Error)

	_, err := svc.Resolve(context.Background(), req.ID, models.RequestApproved, "boss@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, testutil.Reload(t, db, "cook@example.com").Role)
}

func TestResolveRetriesOnChefIDCollision(t *testing.T) {
	db := testutil.NewDB(t)
	taken := testutil.CreateUser(t, db, "first@example.com", models.RoleChef)
	require.NoError(t, db.Model(taken).Update("chef_id", "CHEF-100001").Error)
	testutil.CreateUser(t, db, "second@example.com", models.RoleCustomer)

	draws := []int{1, 1, 2}
	next := 0
	gen := NewChefIDGeneratorWithSource(func(int) int {
		v := draws[next]
		next++
		return v
	}, 5)
	svc := NewRoleRequestService(db).WithChefIDGenerator(gen)
	id := submit(t, svc, "second@example.com", "chef")

	_, err := svc.Resolve(context.Background(), id, models.RequestApproved, "boss@example.com")
	require.NoError(t, err)
	assert.Equal(t, "CHEF-100002", *testutil.Reload(t, db, "second@example.com").ChefID)
	assert.Equal(t, 3, next)
}

func TestResolveRollsBackWhenChefIDCannotBeAllocated(t *testing.T) {
	db := testutil.NewDB(t)
	taken := testutil.CreateUser(t, db, "first@example.com", models.RoleChef)
	require.NoError(t, db.Model(taken).Update("chef_id", "CHEF-100000").Error)
	testutil.CreateUser(t, db, "second@example.com", models.RoleCustomer)

	gen := NewChefIDGeneratorWithSource(func(int) int { return 0 }, 3)
	svc := NewRoleRequestService(db).WithChefIDGenerator(gen)
	id := submit(t, svc, "second@example.com", "chef")

	_, err := svc.Resolve(context.Background(), id, models.RequestApproved, "boss@example.com")
	require.ErrorIs(t, err, ErrChefIDExhausted)

	assert.Equal(t, models.RequestPending, loadRequest(t, db, id).RequestStatus)
	assert.Equal(t, models.RoleCustomer, testutil.Reload(t, db, "second@example.com").Role)
}

func TestResolveKeepsExistingChefID(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "cook@example.com", models.RoleAdmin)
	require.NoError(t, db.Model(user).Update("chef_id", "CHEF-555555").Error)
	svc := NewRoleRequestService(db)
	id := submit(t, svc, "cook@example.com", "chef")

	_, err := svc.Resolve(context.Background(), id, models.RequestApproved, "boss@example.com")
	require.NoError(t, err)

	reloaded := testutil.Reload(t, db, "cook@example.com")
	assert.Equal(t, models.RoleChef, reloaded.Role)
	assert.Equal(t, "CHEF-555555", *reloaded.ChefID)
}

func TestListRoleRequestsNewestFirst(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRoleRequestService(db)
	submit(t, svc, "a@example.com", "chef")
	second := submit(t, svc, "b@example.com", "admin")

	requests, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, second, requests[0].ID)
}
