package services

import (
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/caravane/restaurant-api/models"
	"github.com/caravane/restaurant-api/utils"
)

type LoyaltyService struct {
	DB *gorm.DB
}

func NewLoyaltyService(db *gorm.DB) *LoyaltyService {
	return &LoyaltyService{DB: db}
}

// GetOrCreateCard returns the user's loyalty card, creating an empty one on
// first contact.
func (s *LoyaltyService) GetOrCreateCard(userID uint) (*models.LoyaltyCard, error) {
	var card models.LoyaltyCard
	err := s.DB.Where(models.LoyaltyCard{UserID: userID}).
		FirstOrCreate(&card).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// AwardPointsForOrder credits floor(TotalAmount) points for a COMPLETED order,
// one point per currency unit, as a single EARNED transaction. Awarding twice
// for the same order fails. Orders without a user earn nothing.
func (s *LoyaltyService) AwardPointsForOrder(orderID uint) (*models.LoyaltyTransaction, error) {
	var transaction *models.LoyaltyTransaction

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
			}
			return err
		}
		if order.Status != models.OrderStatusCompleted {
			return fmt.Errorf("%w: points are only awarded for completed orders", ErrValidation)
		}
		if order.UserID == nil {
			return fmt.Errorf("%w: anonymous orders do not earn points", ErrValidation)
		}

		// One accrual per order.
		var existing int64
		if err := tx.Model(&models.LoyaltyTransaction{}).
			Where("order_id = ? AND type = ?", orderID, models.LoyaltyTxEarned).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return fmt.Errorf("%w: points already awarded for order %d", ErrValidation, orderID)
		}

		points := int(math.Floor(order.TotalAmount)) * models.PointsPerCurrencyUnit
		if points <= 0 {
			return fmt.Errorf("%w: order total too small to earn points", ErrValidation)
		}

		var card models.LoyaltyCard
		if err := tx.Clauses(lockForUpdate()).
			Where(models.LoyaltyCard{UserID: *order.UserID}).
			FirstOrCreate(&card).Error; err != nil {
			return err
		}

		t := &models.LoyaltyTransaction{
			LoyaltyCardID: card.ID,
			RestaurantID:  order.RestaurantID,
			Points:        points,
			Type:          models.LoyaltyTxEarned,
			Description:   fmt.Sprintf("Points earned from order %s", order.OrderNumber),
			OrderID:       &order.ID,
		}
		if err := tx.Create(t).Error; err != nil {
			return err
		}

		if err := tx.Model(&card).
			Update("points", gorm.Expr("points + ?", points)).Error; err != nil {
			return err
		}

		transaction = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// RedemptionResult reports the outcome of a points redemption.
type RedemptionResult struct {
	PointsRedeemed  int     `json:"points_redeemed"`
	CreditAmount    float64 `json:"credit_amount"`
	RemainingPoints int     `json:"remaining_points"`
}

// RedeemPoints converts points into a monetary credit (100 points = 1 currency
// unit) against the user's card. Requires at least the program minimum and a
// sufficient balance; the card row stays locked for the whole read-modify-write
// so the balance can never go negative under concurrent redemptions.
func (s *LoyaltyService) RedeemPoints(userID, restaurantID uint, points int) (*RedemptionResult, error) {
	if points < models.MinimumRedemption {
		return nil, fmt.Errorf("%w: minimum redemption is %d points", ErrValidation, models.MinimumRedemption)
	}

	var result *RedemptionResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var restaurant models.Restaurant
		if err := tx.First(&restaurant, restaurantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: restaurant %d", ErrNotFound, restaurantID)
			}
			return err
		}
		if !restaurant.IsActive {
			return fmt.Errorf("%w: restaurant %d is inactive", ErrNotFound, restaurantID)
		}

		var card models.LoyaltyCard
		if err := tx.Clauses(lockForUpdate()).
			Where("user_id = ?", userID).First(&card).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no loyalty card for user %d", ErrNotFound, userID)
			}
			return err
		}

		if card.Points < points {
			return fmt.Errorf("%w: have %d, need %d", ErrInsufficientPoints, card.Points, points)
		}

		credit := utils.RoundCurrency(float64(points) / models.PointsToMoneyRatio)

		t := &models.LoyaltyTransaction{
			LoyaltyCardID: card.ID,
			RestaurantID:  restaurantID,
			Points:        -points,
			Type:          models.LoyaltyTxRedeemed,
			Description:   fmt.Sprintf("Redeemed %d points for %s credit", points, utils.FormatCurrency(credit)),
		}
		if err := tx.Create(t).Error; err != nil {
			return err
		}

		if err := tx.Model(&card).
			Update("points", gorm.Expr("points - ?", points)).Error; err != nil {
			return err
		}

		result = &RedemptionResult{
			PointsRedeemed:  points,
			CreditAmount:    credit,
			RemainingPoints: card.Points - points,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
