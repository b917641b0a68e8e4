package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/caravane/restaurant-api/models"
	"github.com/caravane/restaurant-api/router"
	"github.com/caravane/restaurant-api/utils"
)

var testDBCounter int64

// setupTestEnv opens a fresh in-memory SQLite database with the full schema
// and builds the real router on top of it.
func setupTestEnv(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitLogger()

	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:controllers_test_%d?mode=memory&cache=shared", n)
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

	return db, router.SetupRouter(db)
}

func createUser(t *testing.T, db *gorm.DB, role, password string, restaurantID *uint) models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	n := atomic.AddInt64(&testDBCounter, 1)
	user := models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        fmt.Sprintf("user%d@example.com", n),
		Password:     string(hashed),
		Role:         role,
		RestaurantID: restaurantID,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, r *gin.Engine, method, url, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		buf = bytes.NewBuffer(payload)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return response
}

func seedRestaurantWithMenu(t *testing.T, db *gorm.DB) (models.Restaurant, models.Dish) {
	t.Helper()
	restaurant := models.Restaurant{Name: "Bistro du Port", City: "Marseille", IsActive: true}
	if err := db.Create(&restaurant).Error; err != nil {
		t.Fatalf("failed to seed restaurant: %v", err)
	}
	menu := models.Menu{RestaurantID: restaurant.ID, Name: "Main Menu", IsActive: true}
	if err := db.Create(&menu).Error; err != nil {
		t.Fatalf("failed to seed menu: %v", err)
	}
	category := models.MenuCategory{MenuID: menu.ID, Name: "Mains"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	dish := models.Dish{
		CategoryID:  category.ID,
		Name:        "Bouillabaisse",
		Price:       28.00,
		Quantity:    50,
		IsAvailable: true,
	}
	if err := db.Create(&dish).Error; err != nil {
		t.Fatalf("failed to seed dish: %v", err)
	}
	return restaurant, dish
}
