package services

import (
	"context"
	"errors"

	"chef-marketplace-api/apperrors"
	"chef-marketplace-api/models"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := s.db.WithContext(ctx).Order("created_at").Find(&users).Error
	return users, err
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RoleOf returns the role of email, or customer for an account that is not registered yet.
func (s *UserService) RoleOf(ctx context.Context, email string) (models.UserRole, error) {
	user, err := s.GetByEmail(ctx, email)
	if apperrors.HasCode(err, apperrors.CodeNotFound) {
		return models.RoleCustomer, nil
	}
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// Create registers user unless the email is already known; created reports which happened.
// New accounts always start as active customers: elevation goes through role requests.
func (s *UserService) Create(ctx context.Context, user *models.User) (result *models.InsertResult, created bool, err error) {
	user.Role = models.RoleCustomer
	user.Status = models.UserStatusActive
	user.ChefID = nil

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		created = true
		return tx.Create(user).Error
	})
	if err != nil {
		if _, lookupErr := s.GetByEmail(ctx, user.Email); lookupErr == nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	if !created {
		return nil, false, nil
	}
	return models.Inserted(user.ID), true, nil
}

// MarkFraud flags the account with the given id.
func (s *UserService) MarkFraud(ctx context.Context, id string) (*models.UpdateResult, error) {
	return updateByID(s.db.WithContext(ctx), &models.User{}, id, map[string]any{"status": models.UserStatusFraud})
}

// PromoteAdmin grants admin to email, creating the account when it does not exist yet.
// It bootstraps the first admin, who can then approve role requests.
func (s *UserService) PromoteAdmin(ctx context.Context, email string) (created bool, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("email = ?", email).Update("role", models.RoleAdmin)
		if res.Error != nil || res.RowsAffected > 0 {
			return res.Error
		}
		created = true
		return tx.Create(&models.User{Email: email, Role: models.RoleAdmin, Status: models.UserStatusActive}).Error
	})
	return created, err
}
