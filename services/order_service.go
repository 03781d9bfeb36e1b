package services

import (
	"context"
	"errors"
	"time"

	"chef-marketplace-api/apperrors"
	"chef-marketplace-api/logger"
	"chef-marketplace-api/models"
	"chef-marketplace-api/statemachine"

	"gorm.io/gorm"
)

// Caller identifies who is acting on an order.
type Caller struct {
	Email string
	Role  models.UserRole
}

type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// Place stores a new pending, unpaid order for the caller.
func (s *OrderService) Place(ctx context.Context, order *models.Order, caller Caller) (*models.InsertResult, error) {
	if order.UserEmail == "" {
		order.UserEmail = caller.Email
	}
	if order.UserEmail != caller.Email && caller.Role != models.RoleAdmin {
		return nil, apperrors.Forbidden("Orders can only be placed for your own account")
	}
	order.OrderStatus = models.OrderPending
	order.PaymentStatus = models.PaymentPending
	order.TransactionID = ""
	order.OrderTime = time.Now()
	order.StatusHistory = nil

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureNotFraud(tx, order.UserEmail); err != nil {
			return err
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Create(&models.OrderStatusHistory{
			OrderID:   order.ID,
			ToStatus:  models.OrderPending,
			ChangedBy: caller.Email,
			Note:      "Order placed by customer",
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return models.Inserted(order.ID), nil
}

// ByCustomer returns the orders of email, newest first.
func (s *OrderService) ByCustomer(ctx context.Context, email string) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.WithContext(ctx).Where("user_email = ?", email).Order("order_time desc").Find(&orders).Error
	return orders, err
}

func (s *OrderService) ByChef(ctx context.Context, chefID string) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.WithContext(ctx).Where("chef_id = ?", chefID).Order("order_time desc").Find(&orders).Error
	return orders, err
}

// Get returns one order with its status history.
func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := findByID(s.db.WithContext(ctx).Preload("StatusHistory"), &order, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Order not found")
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus moves an order along the order state machine and records the change.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, to models.OrderStatus, caller Caller) (*models.UpdateResult, error) {
	var result *models.UpdateResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := findByID(tx, &order, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Order not found")
			}
			return err
		}

		actor, err := s.actorFor(tx, &order, caller)
		if err != nil {
			return err
		}
		if err := statemachine.CanTransition(order.OrderStatus, to, actor); err != nil {
			return apperrors.Validation("Cannot change order status").WithDetails(map[string]any{
				"reason":       err.Error(),
				"currentState": order.OrderStatus,
			})
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND order_status = ?", order.ID, order.OrderStatus).
			Update("order_status", to)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.Conflict("Order status changed concurrently")
		}
		result = &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: res.RowsAffected}

		return tx.Create(&models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: order.OrderStatus,
			ToStatus:   to,
			ChangedBy:  caller.Email,
			Note:       "Status changed by " + string(actor),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	logger.CtxInfo(ctx, "order status changed", "order_id", id, "to", to)
	return result, nil
}

// actorFor decides in which capacity caller acts on order: admins act as admin, the
// order's chef as chef and the ordering customer as customer.
func (s *OrderService) actorFor(tx *gorm.DB, order *models.Order, caller Caller) (statemachine.Actor, error) {
	if caller.Role == models.RoleAdmin {
		return statemachine.ActorAdmin, nil
	}
	if caller.Role == models.RoleChef {
		var user models.User
		err := tx.Where("email = ?", caller.Email).First(&user).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
		if err == nil && user.ChefID != nil && *user.ChefID == order.ChefID {
			return statemachine.ActorChef, nil
		}
	}
	if order.UserEmail == caller.Email {
		return statemachine.ActorCustomer, nil
	}
	return "", apperrors.Forbidden("This order does not belong to you")
}
