package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Meal struct {
	ID                    string                      `json:"_id" gorm:"primaryKey"`
	FoodName              string                      `json:"foodName" gorm:"not null" binding:"required"`
	ChefName              string                      `json:"chefName"`
	ChefExperience        string                      `json:"chefExperience,omitempty"`
	ChefID                string                      `json:"chefId" gorm:"index"`
	UserEmail             string                      `json:"userEmail" gorm:"index"`
	FoodImage             string                      `json:"foodImage"`
	Price                 float64                     `json:"price" gorm:"not null;index" binding:"gte=0"`
	Rating                float64                     `json:"rating" gorm:"default:0"`
	Ingredients           datatypes.JSONSlice[string] `json:"ingredients"`
	EstimatedDeliveryTime string                      `json:"estimatedDeliveryTime,omitempty"`
	Description           string                      `json:"description,omitempty"`
	Category              string                      `json:"category,omitempty"`
	Extras                datatypes.JSONMap           `json:"-"`
	CreatedAt             time.Time                   `json:"createdAt"`
	UpdatedAt             time.Time                   `json:"updatedAt"`
}

func (m *Meal) BeforeCreate(*gorm.DB) error {
	assignID(&m.ID)
	return nil
}

type mealDoc Meal

func (m *Meal) UnmarshalJSON(data []byte) error {
	var doc mealDoc
	extras, err := decodeDocument(data, &doc)
	if err != nil {
		return err
	}
	*m = Meal(doc)
	m.Extras = extras
	return nil
}

func (m Meal) MarshalJSON() ([]byte, error) {
	return encodeDocument(mealDoc(m), m.Extras)
}

// MealPatch carries the editable meal fields. Nil fields are left untouched.
type MealPatch struct {
	FoodName              *string   `json:"foodName"`
	ChefName              *string   `json:"chefName"`
	ChefExperience        *string   `json:"chefExperience"`
	ChefID                *string   `json:"chefId"`
	FoodImage             *string   `json:"foodImage"`
	Price                 *float64  `json:"price" binding:"omitempty,gte=0"`
	Rating                *float64  `json:"rating"`
	Ingredients           *[]string `json:"ingredients"`
	EstimatedDeliveryTime *string   `json:"estimatedDeliveryTime"`
	Description           *string   `json:"description"`
	Category              *string   `json:"category"`
}

// Columns maps the provided fields to their column names.
func (p *MealPatch) Columns() map[string]any {
	cols := map[string]any{}
	set := func(col string, ok bool, v any) {
		if ok {
			cols[col] = v
		}
	}
	set("food_name", p.FoodName != nil, deref(p.FoodName))
	set("chef_name", p.ChefName != nil, deref(p.ChefName))
	set("chef_experience", p.ChefExperience != nil, deref(p.ChefExperience))
	set("chef_id", p.ChefID != nil, deref(p.ChefID))
	set("food_image", p.FoodImage != nil, deref(p.FoodImage))
	set("price", p.Price != nil, deref(p.Price))
	set("rating", p.Rating != nil, deref(p.Rating))
	if p.Ingredients != nil {
		cols["ingredients"] = datatypes.JSONSlice[string](*p.Ingredients)
	}
	set("estimated_delivery_time", p.EstimatedDeliveryTime != nil, deref(p.EstimatedDeliveryTime))
	set("description", p.Description != nil, deref(p.Description))
	set("category", p.Category != nil, deref(p.Category))
	return cols
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
