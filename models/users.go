package models

import "time"

// Role values. CLIENT is the default for self-registration; staff roles are
// assigned by a manager or admin and carry a restaurant association.
const (
	RoleClient  = "CLIENT"
	RoleWaiter  = "WAITER"
	RoleChef    = "CHEF"
	RoleManager = "MANAGER"
	RoleAdmin   = "ADMIN"
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	FirstName    string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string     `gorm:"type:varchar(100)" json:"last_name"`
	Email        string     `gorm:"type:varchar(255);unique;not null" json:"email"`
	Phone        string     `gorm:"type:varchar(20)" json:"phone"`
	Password     string     `gorm:"type:varchar(255);not null" json:"-"`
	Role         string     `gorm:"type:varchar(20);not null;default:'CLIENT'" json:"role"`
	RestaurantID *uint      `gorm:"index" json:"restaurant_id,omitempty"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsStaff reports whether the role may operate on restaurant-owned entities.
func (u *User) IsStaff() bool {
	return IsStaffRole(u.Role)
}

func IsStaffRole(role string) bool {
	switch role {
	case RoleWaiter, RoleChef, RoleManager, RoleAdmin:
		return true
	}
	return false
}
