package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderStatus represents all possible states of a meal order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderAccepted  OrderStatus = "accepted"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Order references the ordered meal through FoodID and its chef through ChefID.
// MealName and Price are snapshots taken when the order is placed.
type Order struct {
	ID            string               `json:"_id" gorm:"primaryKey"`
	FoodID        string               `json:"foodId" gorm:"index" binding:"required"`
	MealName      string               `json:"mealName"`
	Price         float64              `json:"price" binding:"gte=0"`
	Quantity      int                  `json:"quantity" gorm:"default:1" binding:"omitempty,min=1"`
	ChefID        string               `json:"chefId" gorm:"index" binding:"required"`
	UserEmail     string               `json:"userEmail" gorm:"index" binding:"omitempty,email"`
	UserAddress   string               `json:"userAddress"`
	OrderStatus   OrderStatus          `json:"orderStatus" gorm:"not null;default:'pending'"`
	PaymentStatus PaymentStatus        `json:"paymentStatus" gorm:"not null;default:'pending'"`
	TransactionID string               `json:"transactionId,omitempty"`
	OrderTime     time.Time            `json:"orderTime" gorm:"index"`
	StatusHistory []OrderStatusHistory `json:"statusHistory,omitempty" gorm:"foreignKey:OrderID"`
	Extras        datatypes.JSONMap    `json:"-"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	assignID(&o.ID)
	return nil
}

type orderDoc Order

func (o *Order) UnmarshalJSON(data []byte) error {
	var doc orderDoc
	extras, err := decodeDocument(data, &doc)
	if err != nil {
		return err
	}
	*o = Order(doc)
	o.Extras = extras
	return nil
}

func (o Order) MarshalJSON() ([]byte, error) {
	return encodeDocument(orderDoc(o), o.Extras)
}

// OrderStatusHistory tracks every status change of an order.
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    string      `json:"orderId" gorm:"not null;index"`
	FromStatus OrderStatus `json:"fromStatus"`
	ToStatus   OrderStatus `json:"toStatus" gorm:"not null"`
	ChangedBy  string      `json:"changedBy"`
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"createdAt"`
}
