package models

import "time"

// ProviderResponse is whatever detail the payment channel reported back.
// Explicitly structured instead of an open map so the stored JSON stays stable.
type ProviderResponse struct {
	TransactionID string     `json:"transaction_id,omitempty"`
	StatusMessage string     `json:"status_message,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}

type Payment struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	OrderID          uint             `gorm:"not null;index" json:"order_id"`
	Order            Order            `gorm:"foreignKey:OrderID" json:"-"`
	Amount           float64          `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method           string           `gorm:"type:varchar(30);not null" json:"method"`
	Status           string           `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	ProviderResponse ProviderResponse `gorm:"serializer:json" json:"provider_response"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
