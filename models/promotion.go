package models

import "time"

const (
	PromotionTypeDiscount     = "DISCOUNT"
	PromotionTypeBogo         = "BOGO"
	PromotionTypeFreeDelivery = "FREE_DELIVERY"
	PromotionTypeHappyHour    = "HAPPY_HOUR"
	PromotionTypeSeasonal     = "SEASONAL"
)

const (
	DiscountTypePercentage  = "PERCENTAGE"
	DiscountTypeFixedAmount = "FIXED_AMOUNT"
)

// Promotion windows are inclusive-start, exclusive-end. CurrentUses never
// exceeds MaxUses when MaxUses is set; the increment happens under a row lock.
type Promotion struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	RestaurantID   uint            `gorm:"not null;index" json:"restaurant_id"`
	Restaurant     Restaurant      `gorm:"foreignKey:RestaurantID" json:"-"`
	Title          string          `gorm:"type:varchar(100);not null" json:"title"`
	Description    string          `gorm:"type:varchar(500)" json:"description"`
	Type           string          `gorm:"type:varchar(20);not null;default:'DISCOUNT'" json:"type"`
	DiscountType   string          `gorm:"type:varchar(20);not null" json:"discount_type"`
	DiscountValue  float64         `gorm:"type:decimal(10,2);not null" json:"discount_value"`
	MinOrderAmount *float64        `gorm:"type:decimal(10,2)" json:"min_order_amount,omitempty"`
	StartDate      time.Time       `gorm:"not null" json:"start_date"`
	EndDate        time.Time       `gorm:"not null" json:"end_date"`
	MaxUses        *int            `json:"max_uses,omitempty"`
	CurrentUses    int             `gorm:"not null;default:0" json:"current_uses"`
	IsActive       bool            `gorm:"not null;default:true" json:"is_active"`
	Dishes         []PromotionDish `gorm:"foreignKey:PromotionID" json:"dishes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// PromotionDish scopes a promotion to specific dishes. A promotion with no
// rows here applies to the whole restaurant.
type PromotionDish struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	PromotionID uint `gorm:"not null;uniqueIndex:idx_promotion_dish" json:"promotion_id"`
	DishID      uint `gorm:"not null;uniqueIndex:idx_promotion_dish" json:"dish_id"`
	Dish        Dish `gorm:"foreignKey:DishID" json:"dish,omitempty"`
}
