package models

import "time"

const (
	LoyaltyTxEarned   = "EARNED"
	LoyaltyTxRedeemed = "REDEEMED"
	LoyaltyTxBonus    = "BONUS"
)

// Loyalty program parameters: 1 point per currency unit spent,
// 100 points = 1 currency unit of credit, 100 points minimum redemption.
const (
	PointsPerCurrencyUnit = 1
	PointsToMoneyRatio    = 100
	MinimumRedemption     = 100
)

// LoyaltyCard is the per-user points ledger, one per user. Points never go
// negative; every change is mirrored by a LoyaltyTransaction.
type LoyaltyCard struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Points    int       `gorm:"not null;default:0" json:"points"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoyaltyTransaction is an immutable signed point delta. Positive for
// EARNED/BONUS, negative for REDEEMED.
type LoyaltyTransaction struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	LoyaltyCardID uint        `gorm:"not null;index" json:"loyalty_card_id"`
	LoyaltyCard   LoyaltyCard `gorm:"foreignKey:LoyaltyCardID" json:"-"`
	RestaurantID  uint        `gorm:"not null;index" json:"restaurant_id"`
	Points        int         `gorm:"not null" json:"points"`
	Type          string      `gorm:"type:varchar(20);not null" json:"type"`
	Description   string      `gorm:"type:varchar(255);not null" json:"description"`
	OrderID       *uint       `gorm:"index" json:"order_id,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}
