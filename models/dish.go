package models

import "time"

type Dish struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	CategoryID      uint         `gorm:"not null;index" json:"category_id"`
	Category        MenuCategory `gorm:"foreignKey:CategoryID" json:"-"`
	Name            string       `gorm:"type:varchar(200);not null" json:"name"`
	Description     string       `gorm:"type:text" json:"description"`
	Price           float64      `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity        int          `gorm:"not null;default:0" json:"quantity"`
	IsAvailable     bool         `gorm:"not null;default:true" json:"is_available"`
	PreparationTime int          `gorm:"not null;default:15" json:"preparation_time"`
	DisplayOrder    int          `gorm:"not null;default:0" json:"display_order"`
	ImageURL        string       `gorm:"type:varchar(500)" json:"image_url"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}
