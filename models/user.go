package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleChef     UserRole = "chef"
	RoleAdmin    UserRole = "admin"
)

type UserStatus string

const (
	UserStatusActive UserStatus = "active"
	UserStatusFraud  UserStatus = "fraud"
)

type User struct {
	ID        string            `json:"_id" gorm:"primaryKey"`
	Name      string            `json:"name"`
	Email     string            `json:"email" gorm:"uniqueIndex;not null" binding:"required,email"`
	Image     string            `json:"image,omitempty"`
	Address   string            `json:"address,omitempty"`
	Role      UserRole          `json:"role" gorm:"not null;default:'customer'"`
	ChefID    *string           `json:"chefId,omitempty" gorm:"uniqueIndex"`
	Status    UserStatus        `json:"status" gorm:"not null;default:'active'"`
	Extras    datatypes.JSONMap `json:"-"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	assignID(&u.ID)
	return nil
}

type userDoc User

func (u *User) UnmarshalJSON(data []byte) error {
	var doc userDoc
	extras, err := decodeDocument(data, &doc)
	if err != nil {
		return err
	}
	*u = User(doc)
	u.Extras = extras
	return nil
}

func (u User) MarshalJSON() ([]byte, error) {
	return encodeDocument(userDoc(u), u.Extras)
}

// IsFraud reports whether the account was flagged by an admin.
func (u *User) IsFraud() bool {
	return u.Status == UserStatusFraud
}
