package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/caravane/restaurant-api/models"
	"github.com/caravane/restaurant-api/utils"
)

type PaymentController struct {
	DB *gorm.DB
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

// RecordPayment registers a payment against an order and, if the paid amount
// covers the total, marks the order PAID. Staff only.
func (pc *PaymentController) RecordPayment(c *gin.Context) {
	orderID, ok := parseUintParam(c, "order_id")
	if !ok {
		return
	}

	var req struct {
		Amount        float64 `json:"amount" binding:"required,gt=0"`
		Method        string  `json:"method" binding:"required"`
		TransactionID string  `json:"transaction_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var payment models.Payment
	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, orderID).Error; err != nil {
			return err
		}

		if !canManageRestaurant(c, order.RestaurantID) {
			return ErrNoPermission
		}
		if order.PaymentStatus == models.PaymentStatusPaid {
			return errors.New("order is already paid")
		}
		if order.Status == models.OrderStatusCancelled {
			return errors.New("cannot record a payment for a cancelled order")
		}
		if req.Amount < order.TotalAmount {
			return fmt.Errorf("amount %s does not cover order total %s",
				utils.FormatCurrency(req.Amount), utils.FormatCurrency(order.TotalAmount))
		}

		now := time.Now()
		payment = models.Payment{
			OrderID: order.ID,
			Amount:  utils.RoundCurrency(req.Amount),
			Method:  req.Method,
			Status:  models.PaymentStatusPaid,
			ProviderResponse: models.ProviderResponse{
				TransactionID: req.TransactionID,
				StatusMessage: "settled",
				PaidAt:        &now,
			},
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		return tx.Model(&order).
			Update("payment_status", models.PaymentStatusPaid).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		if errors.Is(err, ErrNoPermission) {
			utils.RespondError(c, http.StatusForbidden, err)
			return
		}
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	utils.InfoLogger.Printf("Payment of %s recorded for order %d (%s)",
		utils.FormatCurrency(payment.Amount), orderID, payment.Method)
	utils.RespondJSON(c, http.StatusCreated, "Payment recorded", payment)
}

// GetOrderPayments lists payments recorded for an order. Staff only.
func (pc *PaymentController) GetOrderPayments(c *gin.Context) {
	orderID, ok := parseUintParam(c, "order_id")
	if !ok {
		return
	}

	var order models.Order
	if err := pc.DB.First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if !canManageRestaurant(c, order.RestaurantID) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var payments []models.Payment
	if err := pc.DB.Where("order_id = ?", order.ID).Order("created_at").Find(&payments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order payments", payments)
}
