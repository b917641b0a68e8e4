package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/caravane/restaurant-api/models"
	"github.com/caravane/restaurant-api/utils"
)

var testDBCounter int64

// openTestDB gives every test its own in-memory SQLite database with the full
// schema migrated.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Table{},
		&models.Menu{},
		&models.MenuCategory{},
		&models.Dish{},
		&models.Order{},
		&models.OrderItem{},
		&models.Reservation{},
		&models.Promotion{},
		&models.PromotionDish{},
		&models.LoyaltyCard{},
		&models.LoyaltyTransaction{},
		&models.Review{},
		&models.Payment{},
		&models.InventoryItem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedRestaurant(t *testing.T, db *gorm.DB) models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{Name: "Bistro du Port", City: "Marseille", IsActive: true}
	if err := db.Create(&restaurant).Error; err != nil {
		t.Fatalf("failed to seed restaurant: %v", err)
	}
	return restaurant
}

func seedTable(t *testing.T, db *gorm.DB, restaurantID uint, number string, capacity int) models.Table {
	t.Helper()
	table := models.Table{RestaurantID: restaurantID, Number: number, Capacity: capacity, IsActive: true}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}
	return table
}

func seedDish(t *testing.T, db *gorm.DB, restaurantID uint, name string, price float64, stock int) models.Dish {
	t.Helper()
	menu := models.Menu{RestaurantID: restaurantID, Name: "Main Menu", IsActive: true}
	if err := db.Create(&menu).Error; err != nil {
		t.Fatalf("failed to seed menu: %v", err)
	}
	category := models.MenuCategory{MenuID: menu.ID, Name: "Mains"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	dish := models.Dish{
		CategoryID:  category.ID,
		Name:        name,
		Price:       price,
		Quantity:    stock,
		IsAvailable: true,
	}
	if err := db.Create(&dish).Error; err != nil {
		t.Fatalf("failed to seed dish: %v", err)
	}
	return dish
}

func seedUser(t *testing.T, db *gorm.DB, role string, restaurantID *uint) models.User {
	t.Helper()
	n := atomic.AddInt64(&testDBCounter, 1)
	user := models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        fmt.Sprintf("user%d@example.com", n),
		Password:     "irrelevant",
		Role:         role,
		RestaurantID: restaurantID,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func at(hour, minute int) time.Time {
	base := time.Now().AddDate(0, 0, 7)
	return time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, time.UTC)
}
