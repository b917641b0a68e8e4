package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/caravane/restaurant-api/models"
	"github.com/caravane/restaurant-api/utils"
)

type DiscountService struct {
	DB *gorm.DB
}

func NewDiscountService(db *gorm.DB) *DiscountService {
	return &DiscountService{DB: db}
}

// CalculateDiscount validates the promotion against the order and returns the
// discount amount. Read-only: usage counters are untouched. dishIDs are the
// ordered dishes, consulted only for dish-scoped promotions.
func (s *DiscountService) CalculateDiscount(promotionID uint, subtotal float64, dishIDs []uint) (float64, error) {
	var promotion models.Promotion
	if err := s.DB.Preload("Dishes").First(&promotion, promotionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: promotion %d", ErrNotFound, promotionID)
		}
		return 0, err
	}
	return validateAndCompute(&promotion, subtotal, dishIDs, time.Now())
}

// ApplyPromotion validates the promotion, increments its usage counter and
// returns the discount. The whole operation runs with the promotion row locked
// so CurrentUses can never pass MaxUses under concurrent applications; losing
// a race against the last remaining use yields ErrConflict.
func (s *DiscountService) ApplyPromotion(promotionID uint, subtotal float64, dishIDs []uint) (float64, error) {
	var discount float64

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		discount, err = applyPromotionTx(tx, promotionID, subtotal, dishIDs)
		return err
	})
	if err != nil {
		return 0, err
	}
	return discount, nil
}

// applyPromotionTx does the locked validate-and-increment inside an existing
// transaction. Order creation reuses it so the discount and the usage counter
// commit atomically with the order row.
func applyPromotionTx(tx *gorm.DB, promotionID uint, subtotal float64, dishIDs []uint) (float64, error) {
	var promotion models.Promotion
	if err := tx.Clauses(lockForUpdate()).First(&promotion, promotionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: promotion %d", ErrNotFound, promotionID)
		}
		return 0, err
	}
	if err := tx.Where("promotion_id = ?", promotion.ID).Find(&promotion.Dishes).Error; err != nil {
		return 0, err
	}

	discount, err := validateAndCompute(&promotion, subtotal, dishIDs, time.Now())
	if err != nil {
		// Exhaustion discovered under the lock means a concurrent
		// application won the last slot.
		if promotion.MaxUses != nil && promotion.CurrentUses >= *promotion.MaxUses {
			return 0, fmt.Errorf("%w: promotion %d exhausted", ErrConflict, promotionID)
		}
		return 0, err
	}

	if err := tx.Model(&promotion).
		Update("current_uses", gorm.Expr("current_uses + ?", 1)).Error; err != nil {
		return 0, err
	}

	return discount, nil
}

// validateAndCompute checks every precondition and computes the discount.
// Never returns a partial or negative discount.
func validateAndCompute(p *models.Promotion, subtotal float64, dishIDs []uint, now time.Time) (float64, error) {
	if subtotal < 0 {
		return 0, fmt.Errorf("%w: negative subtotal", ErrValidation)
	}
	if !p.IsActive {
		return 0, fmt.Errorf("%w: promotion is not active", ErrValidation)
	}
	// Window is inclusive-start, exclusive-end.
	if now.Before(p.StartDate) {
		return 0, fmt.Errorf("%w: promotion has not started yet", ErrValidation)
	}
	if !now.Before(p.EndDate) {
		return 0, fmt.Errorf("%w: promotion has expired", ErrValidation)
	}
	if p.MaxUses != nil && p.CurrentUses >= *p.MaxUses {
		return 0, fmt.Errorf("%w: promotion usage limit reached", ErrValidation)
	}
	if p.MinOrderAmount != nil && subtotal < *p.MinOrderAmount {
		return 0, fmt.Errorf("%w: minimum order amount is %.2f", ErrValidation, *p.MinOrderAmount)
	}
	if len(p.Dishes) > 0 {
		if !containsScopedDish(p.Dishes, dishIDs) {
			return 0, fmt.Errorf("%w: promotion does not apply to any ordered dish", ErrValidation)
		}
	}

	var discount float64
	switch p.DiscountType {
	case models.DiscountTypePercentage:
		discount = subtotal * p.DiscountValue / 100
		if discount > subtotal {
			discount = subtotal
		}
	case models.DiscountTypeFixedAmount:
		discount = p.DiscountValue
		if discount > subtotal {
			discount = subtotal
		}
	default:
		return 0, fmt.Errorf("%w: unknown discount type %q", ErrValidation, p.DiscountType)
	}

	return utils.RoundCurrency(discount), nil
}

func containsScopedDish(scoped []models.PromotionDish, ordered []uint) bool {
	set := make(map[uint]bool, len(scoped))
	for _, pd := range scoped {
		set[pd.DishID] = true
	}
	for _, id := range ordered {
		if set[id] {
			return true
		}
	}
	return false
}
