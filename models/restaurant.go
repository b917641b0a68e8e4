package models

import "time"

// DayHours is one day's opening window, "HH:MM" 24h local time.
// Closed overrides the open/close pair.
type DayHours struct {
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed,omitempty"`
}

// OperatingHours is the weekly schedule. Kept as an explicit structure rather
// than a free-form map so unknown keys are rejected at the API boundary.
type OperatingHours struct {
	Monday    DayHours `json:"monday"`
	Tuesday   DayHours `json:"tuesday"`
	Wednesday DayHours `json:"wednesday"`
	Thursday  DayHours `json:"thursday"`
	Friday    DayHours `json:"friday"`
	Saturday  DayHours `json:"saturday"`
	Sunday    DayHours `json:"sunday"`
}

type Restaurant struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"type:varchar(200);not null" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	Phone          string         `gorm:"type:varchar(20);not null" json:"phone"`
	Email          string         `gorm:"type:varchar(255)" json:"email"`
	Website        string         `gorm:"type:varchar(255)" json:"website"`
	OperatingHours OperatingHours `gorm:"serializer:json" json:"operating_hours"`
	Street         string         `gorm:"type:varchar(255)" json:"street"`
	City           string         `gorm:"type:varchar(100)" json:"city"`
	Latitude       *float64       `json:"latitude,omitempty"`
	Longitude      *float64       `json:"longitude,omitempty"`
	IsActive       bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
