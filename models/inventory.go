package models

import "time"

type InventoryItem struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
	Name         string     `gorm:"type:varchar(100);not null" json:"name"`
	Description  string     `gorm:"type:varchar(500)" json:"description"`
	Category     string     `gorm:"type:varchar(50);not null" json:"category"`
	Unit         string     `gorm:"type:varchar(20);not null" json:"unit"`
	CurrentStock float64    `gorm:"not null;default:0" json:"current_stock"`
	MinimumStock float64    `gorm:"not null;default:0" json:"minimum_stock"`
	UnitPrice    float64    `gorm:"type:decimal(10,2);not null;default:0" json:"unit_price"`
	Supplier     string     `gorm:"type:varchar(100)" json:"supplier"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsLowStock reports whether current stock has fallen to the reorder point.
func (i *InventoryItem) IsLowStock() bool {
	return i.CurrentStock <= i.MinimumStock
}
