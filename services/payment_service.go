package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"chef-marketplace-api/apperrors"
	"chef-marketplace-api/logger"
	"chef-marketplace-api/models"
	"chef-marketplace-api/payment"

	"gorm.io/gorm"
)

// PaymentRecord is the outcome of recording a captured payment.
type PaymentRecord struct {
	PaymentResult *models.InsertResult `json:"paymentResult"`
	UpdateResult  *models.UpdateResult `json:"updateResult"`
}

type PaymentService struct {
	db       *gorm.DB
	gateway  payment.Gateway
	currency string
}

func NewPaymentService(db *gorm.DB, gateway payment.Gateway, currency string) *PaymentService {
	if currency == "" {
		currency = "usd"
	}
	return &PaymentService{db: db, gateway: gateway, currency: currency}
}

// CreateIntent opens a card payment for price (in major units) and returns the client secret.
func (s *PaymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	amount, err := payment.ToMinorUnits(price)
	if err != nil {
		return "", apperrors.Validation("price must be a positive number")
	}
	intent, err := s.gateway.CreateIntent(ctx, amount, s.currency)
	if err != nil {
		logger.CtxError(ctx, "create payment intent failed", err, "amount", amount)
		return "", apperrors.Upstream(err, "Payment provider unavailable")
	}
	logger.CtxInfo(ctx, "payment intent created", "intent_id", intent.ID, "amount", amount)
	return intent.ClientSecret, nil
}

// Record stores a captured payment and marks its order paid in one transaction.
// Recording the same transaction id twice fails with Conflict.
func (s *PaymentService) Record(ctx context.Context, p *models.Payment) (*PaymentRecord, error) {
	if p.Date.IsZero() {
		p.Date = time.Now()
	}

	record := &PaymentRecord{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Payment{}).Where("transaction_id = ?", p.TransactionID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperrors.Conflict("Payment already recorded")
		}
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		record.PaymentResult = models.Inserted(p.ID)

		res, err := updateByID(tx, &models.Order{}, p.OrderID, map[string]any{
			"payment_status": models.PaymentPaid,
			"transaction_id": p.TransactionID,
		})
		if err != nil {
			return err
		}
		record.UpdateResult = res
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("Payment already recorded")
		}
		return nil, err
	}
	if record.UpdateResult.MatchedCount == 0 {
		logger.CtxWarn(ctx, "payment recorded for unknown order", "order_id", p.OrderID, "transaction_id", p.TransactionID)
	}
	return record, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
