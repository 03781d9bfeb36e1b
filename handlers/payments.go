package handlers

import (
	"net/http"

	"chef-marketplace-api/config"
	"chef-marketplace-api/models"
	"chef-marketplace-api/payment"
	"chef-marketplace-api/services"

	"github.com/gin-gonic/gin"
)

var (
	paymentGateway  payment.Gateway = payment.Unconfigured{}
	paymentCurrency                 = "usd"
)

// SetPaymentGateway installs the processor used for payment intents.
func SetPaymentGateway(g payment.Gateway, currency string) {
	paymentGateway = g
	if currency != "" {
		paymentCurrency = currency
	}
}

type PaymentIntentRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}

func paymentService() *services.PaymentService {
	return services.NewPaymentService(config.DB, paymentGateway, paymentCurrency)
}

// CreatePaymentIntent opens a card payment for the given price
func CreatePaymentIntent(c *gin.Context) {
	var req PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	secret, err := paymentService().CreateIntent(c.Request.Context(), req.Price)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}

// RecordPayment stores a captured payment and marks its order paid
func RecordPayment(c *gin.Context) {
	var p models.Payment
	if err := c.ShouldBindJSON(&p); err != nil {
		bindError(c, err)
		return
	}
	record, err := paymentService().Record(c.Request.Context(), &p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}
