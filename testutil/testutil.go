// Package testutil holds helpers shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"chef-marketplace-api/config"
	"chef-marketplace-api/middleware"
	"chef-marketplace-api/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB opens a migrated sqlite database in a temp dir and installs it as config.DB
// for the duration of the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB(filepath.Join(t.TempDir(), "chef_test.db"))
	require.NoError(t, err)

	prev := config.DB
	config.DB = db
	t.Cleanup(func() {
		config.DB = prev
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Token mints a bearer token for email with role.
func Token(t *testing.T, email string, role models.UserRole) string {
	t.Helper()
	token, err := middleware.GenerateToken(email, role)
	require.NoError(t, err)
	return token
}

// CreateUser stores a user with the given role, defaulting to an active account.
func CreateUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{Name: email, Email: email, Role: role, Status: models.UserStatusActive}
	require.NoError(t, db.Create(user).Error)
	return user
}

// Reload fetches the user with email again.
func Reload(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.Where("email = ?", email).First(&user).Error)
	return &user
}
