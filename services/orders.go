package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/caravane/restaurant-api/models"
	"github.com/caravane/restaurant-api/utils"
)

// Flat delivery fee charged on DELIVERY orders.
const DeliveryFee = 50.0

// Anonymous QR orders are capped to limit abuse from unauthenticated tables.
const MaxAnonymousOrderAmount = 1000.0

type OrderItemInput struct {
	DishID   uint   `json:"dish_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
	Notes    string `json:"notes"`
}

type OrderInput struct {
	UserID       *uint
	RestaurantID uint
	TableID      *uint
	Type         string
	Items        []OrderItemInput
	Notes        string
	PromotionID  *uint
}

type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

// CreateOrder validates the input, snapshots dish prices, decrements stock,
// applies the optional promotion and writes the order and its items in one
// transaction. Anonymous orders (nil UserID) are restricted to DINE_IN at a
// table and to a maximum total.
func (s *OrderService) CreateOrder(in OrderInput) (*models.Order, error) {
	switch in.Type {
	case models.OrderTypeDineIn, models.OrderTypeTakeaway, models.OrderTypeDelivery:
	default:
		return nil, fmt.Errorf("%w: unknown order type %q", ErrValidation, in.Type)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}
	if in.UserID == nil {
		if in.Type != models.OrderTypeDineIn {
			return nil, fmt.Errorf("%w: anonymous orders must be dine-in", ErrForbidden)
		}
		if in.TableID == nil {
			return nil, fmt.Errorf("%w: anonymous orders require a table", ErrValidation)
		}
	}

	var order *models.Order

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var restaurant models.Restaurant
		if err := tx.First(&restaurant, in.RestaurantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: restaurant %d", ErrNotFound, in.RestaurantID)
			}
			return err
		}
		if !restaurant.IsActive {
			return fmt.Errorf("%w: restaurant %d is inactive", ErrNotFound, in.RestaurantID)
		}

		if in.TableID != nil {
			var table models.Table
			if err := tx.Where("id = ? AND restaurant_id = ?", *in.TableID, in.RestaurantID).
				First(&table).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: table %d", ErrNotFound, *in.TableID)
				}
				return err
			}
			if !table.IsActive {
				return fmt.Errorf("%w: table %d is inactive", ErrNotFound, *in.TableID)
			}
		}

		var subtotal float64
		items := make([]models.OrderItem, 0, len(in.Items))
		dishIDs := make([]uint, 0, len(in.Items))

		for _, item := range in.Items {
			if item.Quantity < 1 {
				return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
			}

			var dish models.Dish
			if err := tx.Clauses(lockForUpdate()).First(&dish, item.DishID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: dish %d", ErrNotFound, item.DishID)
				}
				return err
			}
			if !dish.IsAvailable {
				return fmt.Errorf("%w: dish %q is not available", ErrValidation, dish.Name)
			}
			if dish.Quantity < item.Quantity {
				return fmt.Errorf("%w: dish %q has %d left, requested %d", ErrConflict, dish.Name, dish.Quantity, item.Quantity)
			}

			if err := tx.Model(&dish).
				Update("quantity", gorm.Expr("quantity - ?", item.Quantity)).Error; err != nil {
				return err
			}

			lineTotal := utils.RoundCurrency(dish.Price * float64(item.Quantity))
			subtotal += lineTotal
			dishIDs = append(dishIDs, dish.ID)
			items = append(items, models.OrderItem{
				DishID:     dish.ID,
				Quantity:   item.Quantity,
				UnitPrice:  dish.Price,
				TotalPrice: lineTotal,
				Notes:      item.Notes,
			})
		}
		subtotal = utils.RoundCurrency(subtotal)

		var discount float64
		if in.PromotionID != nil {
			d, err := applyPromotionTx(tx, *in.PromotionID, subtotal, dishIDs)
			if err != nil {
				return err
			}
			discount = d
		}

		var deliveryFee float64
		if in.Type == models.OrderTypeDelivery {
			deliveryFee = DeliveryFee
		}

		total := utils.RoundCurrency(subtotal - discount + deliveryFee)
		if total < 0 {
			// Discount is capped at the subtotal, so this cannot happen; keep
			// the invariant explicit anyway.
			return fmt.Errorf("%w: negative order total", ErrValidation)
		}
		if in.UserID == nil && total > MaxAnonymousOrderAmount {
			return fmt.Errorf("%w: anonymous orders are limited to %s", ErrValidation, utils.FormatCurrency(MaxAnonymousOrderAmount))
		}

		o := &models.Order{
			OrderNumber:   newOrderNumber(),
			UserID:        in.UserID,
			RestaurantID:  in.RestaurantID,
			TableID:       in.TableID,
			Type:          in.Type,
			Status:        models.OrderStatusPending,
			Subtotal:      subtotal,
			Discount:      discount,
			DeliveryFee:   deliveryFee,
			TotalAmount:   total,
			PromotionID:   in.PromotionID,
			PaymentStatus: models.PaymentStatusPending,
			Notes:         in.Notes,
			Items:         items,
		}
		if err := tx.Create(o).Error; err != nil {
			return err
		}

		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}
