package models

import "time"

const (
	ReservationStatusPending   = "PENDING"
	ReservationStatusConfirmed = "CONFIRMED"
	ReservationStatusCancelled = "CANCELLED"
	ReservationStatusCompleted = "COMPLETED"
	ReservationStatusNoShow    = "NO_SHOW"
)

// Reservation holds a table for a time window. Start < End always; tables with
// a PENDING or CONFIRMED reservation cannot take an overlapping one.
type Reservation struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"not null;index" json:"user_id"`
	User            User       `gorm:"foreignKey:UserID" json:"-"`
	RestaurantID    uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant      Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
	TableID         *uint      `gorm:"index" json:"table_id,omitempty"`
	Table           *Table     `gorm:"foreignKey:TableID" json:"table,omitempty"`
	ReservationStart time.Time `gorm:"not null;index" json:"reservation_start"`
	ReservationEnd   time.Time `gorm:"not null" json:"reservation_end"`
	PartySize       int        `gorm:"not null;default:1" json:"party_size"`
	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	SpecialRequests string     `gorm:"type:text" json:"special_requests"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
