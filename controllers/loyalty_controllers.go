package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/caravane/restaurant-api/middlewares"
	"github.com/caravane/restaurant-api/models"
	"github.com/caravane/restaurant-api/services"
	"github.com/caravane/restaurant-api/utils"
)

type LoyaltyController struct {
	DB      *gorm.DB
	Loyalty *services.LoyaltyService
}

func NewLoyaltyController(db *gorm.DB) *LoyaltyController {
	return &LoyaltyController{
		DB:      db,
		Loyalty: services.NewLoyaltyService(db),
	}
}

// GetProgramInfo describes the loyalty program rules.
func (lc *LoyaltyController) GetProgramInfo(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Loyalty program", gin.H{
		"points_per_currency_unit": models.PointsPerCurrencyUnit,
		"points_to_money_ratio":    models.PointsToMoneyRatio,
		"minimum_redemption":       models.MinimumRedemption,
	})
}

// GetMyCard returns the authenticated user's loyalty card, creating it on
// first access.
func (lc *LoyaltyController) GetMyCard(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user not found in context"))
		return
	}

	card, err := lc.Loyalty.GetOrCreateCard(user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Loyalty card", card)
}

// GetMyTransactions lists the authenticated user's loyalty history.
func (lc *LoyaltyController) GetMyTransactions(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user not found in context"))
		return
	}

	card, err := lc.Loyalty.GetOrCreateCard(user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var transactions []models.LoyaltyTransaction
	if err := lc.DB.
		Where("loyalty_card_id = ?", card.ID).
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Loyalty transactions", gin.H{
		"points":       card.Points,
		"transactions": transactions,
	})
}

// RedeemPoints converts points into order credit.
func (lc *LoyaltyController) RedeemPoints(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user not found in context"))
		return
	}

	var req struct {
		RestaurantID uint `json:"restaurant_id" binding:"required"`
		Points       int  `json:"points" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := lc.Loyalty.RedeemPoints(user.ID, req.RestaurantID, req.Points)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("User %d redeemed %d points for %s",
		user.ID, result.PointsRedeemed, utils.FormatCurrency(result.CreditAmount))
	utils.RespondJSON(c, http.StatusOK, "Points redeemed", result)
}

// AwardPoints accrues points for a completed order, staff only. Normally
// accrual happens automatically on completion; this covers manual fixes.
func (lc *LoyaltyController) AwardPoints(c *gin.Context) {
	var req struct {
		OrderID uint `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := lc.DB.First(&order, req.OrderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if !canManageRestaurant(c, order.RestaurantID) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	tx, err := lc.Loyalty.AwardPointsForOrder(req.OrderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("Awarded %d points for order %d", tx.Points, req.OrderID)
	utils.RespondJSON(c, http.StatusOK, "Points awarded", tx)
}
