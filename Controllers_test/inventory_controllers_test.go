package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caravane/restaurant-api/models"
)

func TestInventoryCreateAndLowStockListing(t *testing.T) {
	db, r := setupTestEnv(t)
	restaurant, _ := seedRestaurantWithMenu(t, db)
	restaurantID := restaurant.ID
	manager := createUser(t, db, models.RoleManager, "managersecret", &restaurantID)
	token := tokenFor(t, manager)

	w := doJSON(t, r, "POST", fmt.Sprintf("/restaurants/%d/inventory", restaurant.ID), token, map[string]interface{}{
		"name":          "Saffron",
		"category":      "spices",
		"unit":          "g",
		"current_stock": 20.0,
		"minimum_stock": 25.0,
		"unit_price":    8.50,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "POST", fmt.Sprintf("/restaurants/%d/inventory", restaurant.ID), token, map[string]interface{}{
		"name":          "Olive Oil",
		"category":      "pantry",
		"unit":          "l",
		"current_stock": 40.0,
		"minimum_stock": 10.0,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "GET", fmt.Sprintf("/restaurants/%d/inventory/low-stock", restaurant.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	low := decodeResponse(t, w)["data"].([]interface{})
	require.Len(t, low, 1)
	assert.Equal(t, "Saffron", low[0].(map[string]interface{})["name"])
}

func TestAdjustStockRejectsNegativeResult(t *testing.T) {
	db, r := setupTestEnv(t)
	restaurant, _ := seedRestaurantWithMenu(t, db)
	restaurantID := restaurant.ID
	waiter := createUser(t, db, models.RoleWaiter, "waitersecret", &restaurantID)
	token := tokenFor(t, waiter)

	item := models.InventoryItem{
		RestaurantID: restaurant.ID,
		Name:         "Flour",
		Unit:         "kg",
		CurrentStock: 5,
		MinimumStock: 2,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&item).Error)
	url := fmt.Sprintf("/restaurants/%d/inventory/%d/adjust", restaurant.ID, item.ID)

	w := doJSON(t, r, "POST", url, token, map[string]interface{}{"delta": -8.0, "reason": "spillage"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "POST", url, token, map[string]interface{}{"delta": -4.0, "reason": "baking"})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, true, data["low_stock"])

	var reloaded models.InventoryItem
	require.NoError(t, db.First(&reloaded, item.ID).Error)
	assert.Equal(t, 1.0, reloaded.CurrentStock)
}

func TestInventoryScopedToOwnRestaurant(t *testing.T) {
	db, r := setupTestEnv(t)
	restaurant, _ := seedRestaurantWithMenu(t, db)
	other := models.Restaurant{Name: "Elsewhere", IsActive: true}
	require.NoError(t, db.Create(&other).Error)
	otherID := other.ID
	outsider := createUser(t, db, models.RoleChef, "outsiderpass", &otherID)

	w := doJSON(t, r, "GET", fmt.Sprintf("/restaurants/%d/inventory", restaurant.ID), tokenFor(t, outsider), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
