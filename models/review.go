package models

import "time"

// Review of a restaurant, optionally pinned to a dish. IsVerified means the
// reviewer has a completed order at that restaurant.
type Review struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	User         User       `gorm:"foreignKey:UserID" json:"-"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
	DishID       *uint      `gorm:"index" json:"dish_id,omitempty"`
	Dish         *Dish      `gorm:"foreignKey:DishID" json:"dish,omitempty"`
	Rating       int        `gorm:"not null" json:"rating"`
	Comment      string     `gorm:"type:text" json:"comment"`
	IsVerified   bool       `gorm:"not null;default:false" json:"is_verified"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
