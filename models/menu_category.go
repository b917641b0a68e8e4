package models

import "time"

type MenuCategory struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	MenuID       uint      `gorm:"not null;index" json:"menu_id"`
	Menu         Menu      `gorm:"foreignKey:MenuID" json:"-"`
	Name         string    `gorm:"type:varchar(200);not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	Dishes       []Dish    `gorm:"foreignKey:CategoryID" json:"dishes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
