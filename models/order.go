package models

import "time"

const (
	OrderTypeDineIn   = "DINE_IN"
	OrderTypeTakeaway = "TAKEAWAY"
	OrderTypeDelivery = "DELIVERY"
)

const (
	OrderStatusPending        = "PENDING"
	OrderStatusConfirmed      = "CONFIRMED"
	OrderStatusPreparing      = "PREPARING"
	OrderStatusReady          = "READY"
	OrderStatusOutForDelivery = "OUT_FOR_DELIVERY"
	OrderStatusCompleted      = "COMPLETED"
	OrderStatusCancelled      = "CANCELLED"
)

const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusPaid     = "PAID"
	PaymentStatusFailed   = "FAILED"
	PaymentStatusRefunded = "REFUNDED"
)

// Order. UserID is nil for anonymous QR orders placed at a table.
// TotalAmount = Subtotal - Discount + DeliveryFee, never negative.
type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	OrderNumber   string      `gorm:"type:varchar(30);unique;not null" json:"order_number"`
	UserID        *uint       `gorm:"index" json:"user_id,omitempty"`
	User          *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	RestaurantID  uint        `gorm:"not null;index" json:"restaurant_id"`
	Restaurant    Restaurant  `gorm:"foreignKey:RestaurantID" json:"-"`
	TableID       *uint       `gorm:"index" json:"table_id,omitempty"`
	Table         *Table      `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Type          string      `gorm:"type:varchar(20);not null;default:'DINE_IN'" json:"type"`
	Status        string      `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Subtotal      float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"subtotal"`
	Discount      float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"discount"`
	DeliveryFee   float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"delivery_fee"`
	TotalAmount   float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	PromotionID   *uint       `gorm:"index" json:"promotion_id,omitempty"`
	PaymentStatus string      `gorm:"type:varchar(20);not null;default:'PENDING'" json:"payment_status"`
	Notes         string      `gorm:"type:text" json:"notes"`
	ConfirmedAt   *time.Time  `json:"confirmed_at,omitempty"`
	PreparedAt    *time.Time  `json:"prepared_at,omitempty"`
	ReadyAt       *time.Time  `json:"ready_at,omitempty"`
	CompletedAt   *time.Time  `json:"completed_at,omitempty"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
