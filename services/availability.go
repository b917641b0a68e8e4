package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/caravane/restaurant-api/models"
)

type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// FindAvailableTables returns the active tables of a restaurant that seat at
// least partySize and have no PENDING or CONFIRMED reservation overlapping
// [start, end). An empty result is not an error. partySize <= 0 means any size.
func (s *AvailabilityService) FindAvailableTables(restaurantID uint, start, end time.Time, partySize int) ([]models.Table, error) {
	return s.findAvailableTables(s.DB, restaurantID, start, end, partySize)
}

func (s *AvailabilityService) findAvailableTables(tx *gorm.DB, restaurantID uint, start, end time.Time, partySize int) ([]models.Table, error) {
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: reservation start must be before end", ErrValidation)
	}

	var restaurant models.Restaurant
	if err := tx.First(&restaurant, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: restaurant %d", ErrNotFound, restaurantID)
		}
		return nil, err
	}
	if !restaurant.IsActive {
		return nil, fmt.Errorf("%w: restaurant %d is inactive", ErrNotFound, restaurantID)
	}

	query := tx.Where("restaurant_id = ? AND is_active = ?", restaurantID, true)
	if partySize > 0 {
		query = query.Where("capacity >= ?", partySize)
	}

	var tables []models.Table
	if err := query.Order("number asc").Find(&tables).Error; err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return []models.Table{}, nil
	}

	// Overlap test: existingStart < requestEnd AND existingEnd > requestStart.
	var reserved []uint
	if err := tx.Model(&models.Reservation{}).
		Where("restaurant_id = ? AND table_id IS NOT NULL", restaurantID).
		Where("status IN ?", []string{models.ReservationStatusPending, models.ReservationStatusConfirmed}).
		Where("reservation_start < ? AND reservation_end > ?", end, start).
		Pluck("table_id", &reserved).Error; err != nil {
		return nil, err
	}

	taken := make(map[uint]bool, len(reserved))
	for _, id := range reserved {
		taken[id] = true
	}

	available := make([]models.Table, 0, len(tables))
	for _, t := range tables {
		if !taken[t.ID] {
			available = append(available, t)
		}
	}
	return available, nil
}

// BookTable creates a PENDING reservation, re-checking availability inside a
// transaction so a table cannot be double-booked between check and insert.
// Returns ErrConflict when the requested table was taken in the meantime.
func (s *AvailabilityService) BookTable(userID, restaurantID uint, tableID *uint, start, end time.Time, partySize int, requests string) (*models.Reservation, error) {
	var reservation *models.Reservation

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if tableID != nil {
			// Lock the table row; concurrent bookings of the same table
			// serialize here and the loser sees the winner's reservation.
			var table models.Table
			if err := tx.Clauses(lockForUpdate()).
				Where("id = ? AND restaurant_id = ?", *tableID, restaurantID).
				First(&table).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: table %d", ErrNotFound, *tableID)
				}
				return err
			}
			if !table.IsActive {
				return fmt.Errorf("%w: table %d is inactive", ErrNotFound, *tableID)
			}
			if partySize > 0 && table.Capacity < partySize {
				return fmt.Errorf("%w: table %s seats %d, party of %d", ErrValidation, table.Number, table.Capacity, partySize)
			}

			available, err := s.findAvailableTables(tx, restaurantID, start, end, 0)
			if err != nil {
				return err
			}
			found := false
			for _, t := range available {
				if t.ID == *tableID {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("%w: table %d is not available for the requested slot", ErrConflict, *tableID)
			}
		} else {
			// No table preference: validate the restaurant and window only.
			if _, err := s.findAvailableTables(tx, restaurantID, start, end, partySize); err != nil {
				return err
			}
		}

		r := &models.Reservation{
			UserID:           userID,
			RestaurantID:     restaurantID,
			TableID:          tableID,
			ReservationStart: start,
			ReservationEnd:   end,
			PartySize:        partySize,
			Status:           models.ReservationStatusPending,
			SpecialRequests:  requests,
		}
		if err := tx.Create(r).Error; err != nil {
			return err
		}
		reservation = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}
