package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Review struct {
	ID            string            `json:"_id" gorm:"primaryKey"`
	FoodID        string            `json:"foodId" gorm:"index" binding:"required"`
	MealName      string            `json:"mealName,omitempty"`
	ReviewerName  string            `json:"reviewerName"`
	ReviewerImage string            `json:"reviewerImage,omitempty"`
	UserEmail     string            `json:"userEmail" gorm:"index"`
	Rating        float64           `json:"rating" binding:"gte=0,lte=5"`
	Comment       string            `json:"comment"`
	Date          time.Time         `json:"date" gorm:"index"`
	Extras        datatypes.JSONMap `json:"-"`
}

func (r *Review) BeforeCreate(*gorm.DB) error {
	assignID(&r.ID)
	return nil
}

type reviewDoc Review

func (r *Review) UnmarshalJSON(data []byte) error {
	var doc reviewDoc
	extras, err := decodeDocument(data, &doc)
	if err != nil {
		return err
	}
	*r = Review(doc)
	r.Extras = extras
	return nil
}

func (r Review) MarshalJSON() ([]byte, error) {
	return encodeDocument(reviewDoc(r), r.Extras)
}

type ReviewPatch struct {
	Rating  *float64 `json:"rating" binding:"omitempty,gte=0,lte=5"`
	Comment *string  `json:"comment"`
}
