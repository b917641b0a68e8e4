package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/caravane/restaurant-api/models"
	"github.com/caravane/restaurant-api/utils"
)

// Actor identifies who is requesting a transition.
type Actor struct {
	UserID       uint
	Role         string
	RestaurantID *uint
}

// allowed-edges tables. Anything absent is rejected.
var orderTransitions = map[string][]string{
	models.OrderStatusPending:        {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed:      {models.OrderStatusPreparing, models.OrderStatusCancelled},
	models.OrderStatusPreparing:      {models.OrderStatusReady, models.OrderStatusCancelled},
	models.OrderStatusReady:          {models.OrderStatusOutForDelivery, models.OrderStatusCompleted},
	models.OrderStatusOutForDelivery: {models.OrderStatusCompleted},
}

var reservationTransitions = map[string][]string{
	models.ReservationStatusPending:   {models.ReservationStatusConfirmed, models.ReservationStatusCancelled, models.ReservationStatusNoShow},
	models.ReservationStatusConfirmed: {models.ReservationStatusCompleted, models.ReservationStatusCancelled, models.ReservationStatusNoShow},
}

func transitionAllowed(table map[string][]string, from, to string) bool {
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanTransitionOrder reports whether from -> to is an allowed order edge.
func CanTransitionOrder(from, to string) bool {
	return transitionAllowed(orderTransitions, from, to)
}

// CanTransitionReservation reports whether from -> to is an allowed
// reservation edge.
func CanTransitionReservation(from, to string) bool {
	return transitionAllowed(reservationTransitions, from, to)
}

type StatusService struct {
	DB      *gorm.DB
	Loyalty *LoyaltyService
}

func NewStatusService(db *gorm.DB) *StatusService {
	return &StatusService{DB: db, Loyalty: NewLoyaltyService(db)}
}

// TransitionOrder moves an order along the state machine. Staff advance orders
// of their own restaurant (admin any); a CLIENT may only cancel their own
// PENDING order. Completion triggers loyalty accrual for registered users.
func (s *StatusService) TransitionOrder(orderID uint, to string, actor Actor) (*models.Order, error) {
	var order models.Order

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(lockForUpdate()).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
			}
			return err
		}

		if err := authorizeOrderTransition(&order, to, actor); err != nil {
			return err
		}

		if !CanTransitionOrder(order.Status, to) {
			return fmt.Errorf("%w: order %s -> %s", ErrInvalidTransition, order.Status, to)
		}
		if to == models.OrderStatusOutForDelivery && order.Type != models.OrderTypeDelivery {
			return fmt.Errorf("%w: only delivery orders go out for delivery", ErrInvalidTransition)
		}

		now := time.Now()
		updates := map[string]interface{}{"status": to}
		switch to {
		case models.OrderStatusConfirmed:
			updates["confirmed_at"] = &now
		case models.OrderStatusPreparing:
			updates["prepared_at"] = &now
		case models.OrderStatusReady:
			updates["ready_at"] = &now
		case models.OrderStatusCompleted:
			updates["completed_at"] = &now
		}

		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return err
		}
		order.Status = to
		return nil
	})
	if err != nil {
		return nil, err
	}

	if to == models.OrderStatusCompleted && order.UserID != nil {
		if _, err := s.Loyalty.AwardPointsForOrder(order.ID); err != nil {
			// The order is completed either way; accrual failures must not
			// undo the transition.
			if utils.ErrorLogger != nil {
				utils.ErrorLogger.Printf("loyalty accrual for order %d failed: %v", order.ID, err)
			}
		}
	}

	return &order, nil
}

// TransitionReservation moves a reservation along the state machine. Staff
// handle their restaurant's reservations; a CLIENT may only cancel their own
// PENDING reservation.
func (s *StatusService) TransitionReservation(reservationID uint, to string, actor Actor) (*models.Reservation, error) {
	var reservation models.Reservation

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(lockForUpdate()).First(&reservation, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: reservation %d", ErrNotFound, reservationID)
			}
			return err
		}

		if models.IsStaffRole(actor.Role) {
			if actor.Role != models.RoleAdmin && (actor.RestaurantID == nil || *actor.RestaurantID != reservation.RestaurantID) {
				return fmt.Errorf("%w: reservation belongs to another restaurant", ErrForbidden)
			}
		} else {
			if reservation.UserID != actor.UserID {
				return fmt.Errorf("%w: not your reservation", ErrForbidden)
			}
			if to != models.ReservationStatusCancelled || reservation.Status != models.ReservationStatusPending {
				return fmt.Errorf("%w: clients may only cancel their own pending reservations", ErrForbidden)
			}
		}

		if !CanTransitionReservation(reservation.Status, to) {
			return fmt.Errorf("%w: reservation %s -> %s", ErrInvalidTransition, reservation.Status, to)
		}

		if err := tx.Model(&reservation).Update("status", to).Error; err != nil {
			return err
		}
		reservation.Status = to
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func authorizeOrderTransition(order *models.Order, to string, actor Actor) error {
	if models.IsStaffRole(actor.Role) {
		if actor.Role != models.RoleAdmin && (actor.RestaurantID == nil || *actor.RestaurantID != order.RestaurantID) {
			return fmt.Errorf("%w: order belongs to another restaurant", ErrForbidden)
		}
		return nil
	}
	// Clients: cancel own pending orders, nothing else.
	if order.UserID == nil || *order.UserID != actor.UserID {
		return fmt.Errorf("%w: not your order", ErrForbidden)
	}
	if to != models.OrderStatusCancelled || order.Status != models.OrderStatusPending {
		return fmt.Errorf("%w: clients may only cancel their own pending orders", ErrForbidden)
	}
	return nil
}
