package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Favorite is unique per (user_email, meal_id).
type Favorite struct {
	ID        string            `json:"_id" gorm:"primaryKey"`
	UserEmail string            `json:"userEmail" gorm:"not null;uniqueIndex:idx_favorite_user_meal" binding:"required,email"`
	MealID    string            `json:"mealId" gorm:"not null;uniqueIndex:idx_favorite_user_meal" binding:"required"`
	MealName  string            `json:"mealName"`
	ChefID    string            `json:"chefId,omitempty"`
	ChefName  string            `json:"chefName,omitempty"`
	Price     float64           `json:"price"`
	AddedTime time.Time         `json:"addedTime"`
	Extras    datatypes.JSONMap `json:"-"`
}

func (f *Favorite) BeforeCreate(*gorm.DB) error {
	assignID(&f.ID)
	return nil
}

type favoriteDoc Favorite

func (f *Favorite) UnmarshalJSON(data []byte) error {
	var doc favoriteDoc
	extras, err := decodeDocument(data, &doc)
	if err != nil {
		return err
	}
	*f = Favorite(doc)
	f.Extras = extras
	return nil
}

func (f Favorite) MarshalJSON() ([]byte, error) {
	return encodeDocument(favoriteDoc(f), f.Extras)
}
