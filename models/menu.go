package models

import "time"

// Menu is a restaurant's menu (e.g. "Lunch", "Dinner"). Categories hang off a
// menu, dishes off a category.
type Menu struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	RestaurantID uint           `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant     `gorm:"foreignKey:RestaurantID" json:"-"`
	Name         string         `gorm:"type:varchar(200);not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	DisplayOrder int            `gorm:"not null;default:0" json:"display_order"`
	Categories   []MenuCategory `gorm:"foreignKey:MenuID" json:"categories,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
