package services

import (
	"errors"

	"chef-marketplace-api/apperrors"
	"chef-marketplace-api/models"

	"gorm.io/gorm"
)

// ensureNotFraud fails with Forbidden when email belongs to an account flagged as fraud.
// Unknown accounts pass.
func ensureNotFraud(db *gorm.DB, email string) error {
	if email == "" {
		return nil
	}
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if user.IsFraud() {
		return apperrors.Forbidden("Account is flagged as fraud")
	}
	return nil
}
