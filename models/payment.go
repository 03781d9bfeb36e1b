package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Payment records a captured charge. Card data never reaches the API; only the
// processor's transaction id is kept.
type Payment struct {
	ID            string            `json:"_id" gorm:"primaryKey"`
	OrderID       string            `json:"orderId" gorm:"index" binding:"required"`
	TransactionID string            `json:"transactionId" gorm:"uniqueIndex;not null" binding:"required"`
	Price         float64           `json:"price" binding:"gte=0"`
	Email         string            `json:"email" gorm:"index"`
	MealName      string            `json:"mealName,omitempty"`
	Date          time.Time         `json:"date"`
	Extras        datatypes.JSONMap `json:"-"`
}

func (p *Payment) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	return nil
}

type paymentDoc Payment

func (p *Payment) UnmarshalJSON(data []byte) error {
	var doc paymentDoc
	extras, err := decodeDocument(data, &doc)
	if err != nil {
		return err
	}
	*p = Payment(doc)
	p.Extras = extras
	return nil
}

func (p Payment) MarshalJSON() ([]byte, error) {
	return encodeDocument(paymentDoc(p), p.Extras)
}
