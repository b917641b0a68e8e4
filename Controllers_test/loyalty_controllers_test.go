package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caravane/restaurant-api/models"
)

func TestLoyaltyProgramInfoIsPublic(t *testing.T) {
	_, r := setupTestEnv(t)

	w := doJSON(t, r, "GET", "/loyalty/program", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(models.MinimumRedemption), data["minimum_redemption"])
}

func TestGetMyCardCreatesOnFirstAccess(t *testing.T) {
	db, r := setupTestEnv(t)
	client := createUser(t, db, models.RoleClient, "clientsecret", nil)

	w := doJSON(t, r, "GET", "/loyalty/card", tokenFor(t, client), nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 0.0, data["points"])

	var card models.LoyaltyCard
	require.NoError(t, db.Where("user_id = ?", client.ID).First(&card).Error)
}

func TestRedeemPointsOverHTTP(t *testing.T) {
	db, r := setupTestEnv(t)
	restaurant, _ := seedRestaurantWithMenu(t, db)
	client := createUser(t, db, models.RoleClient, "clientsecret", nil)
	require.NoError(t, db.Create(&models.LoyaltyCard{UserID: client.ID, Points: 300}).Error)

	w := doJSON(t, r, "POST", "/loyalty/redeem", tokenFor(t, client), map[string]interface{}{
		"restaurant_id": restaurant.ID,
		"points":        250,
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 250.0, data["points_redeemed"])
	assert.Equal(t, 2.50, data["credit_amount"])
	assert.Equal(t, 50.0, data["remaining_points"])
}

func TestRedeemPointsInsufficientBalanceOverHTTP(t *testing.T) {
	db, r := setupTestEnv(t)
	restaurant, _ := seedRestaurantWithMenu(t, db)
	client := createUser(t, db, models.RoleClient, "clientsecret", nil)
	require.NoError(t, db.Create(&models.LoyaltyCard{UserID: client.ID, Points: 100}).Error)

	w := doJSON(t, r, "POST", "/loyalty/redeem", tokenFor(t, client), map[string]interface{}{
		"restaurant_id": restaurant.ID,
		"points":        200,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAwardPointsScopedToStaffRestaurant(t *testing.T) {
	db, r := setupTestEnv(t)
	restaurant, _ := seedRestaurantWithMenu(t, db)
	client := createUser(t, db, models.RoleClient, "clientsecret", nil)

	userID := client.ID
	order := models.Order{
		OrderNumber:  fmt.Sprintf("ORD-20260820-AWD%05d", client.ID),
		RestaurantID: restaurant.ID,
		UserID:       &userID,
		Type:         models.OrderTypeDineIn,
		Status:       models.OrderStatusCompleted,
		Subtotal:     80,
		TotalAmount:  80,
	}
	require.NoError(t, db.Create(&order).Error)

	other := models.Restaurant{Name: "Elsewhere", IsActive: true}
	require.NoError(t, db.Create(&other).Error)
	otherID := other.ID
	outsider := createUser(t, db, models.RoleWaiter, "outsiderpass", &otherID)

	w := doJSON(t, r, "POST", "/loyalty/award", tokenFor(t, outsider), map[string]interface{}{
		"order_id": order.ID,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	db.Model(&models.LoyaltyTransaction{}).Count(&count)
	assert.Equal(t, int64(0), count)

	restaurantID := restaurant.ID
	waiter := createUser(t, db, models.RoleWaiter, "waitersecret", &restaurantID)
	w = doJSON(t, r, "POST", "/loyalty/award", tokenFor(t, waiter), map[string]interface{}{
		"order_id": order.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var card models.LoyaltyCard
	require.NoError(t, db.Where("user_id = ?", client.ID).First(&card).Error)
	assert.Equal(t, 80, card.Points)
}

func TestLoyaltyTransactionHistory(t *testing.T) {
	db, r := setupTestEnv(t)
	restaurant, _ := seedRestaurantWithMenu(t, db)
	client := createUser(t, db, models.RoleClient, "clientsecret", nil)
	card := models.LoyaltyCard{UserID: client.ID, Points: 300}
	require.NoError(t, db.Create(&card).Error)
	require.NoError(t, db.Create(&models.LoyaltyTransaction{
		LoyaltyCardID: card.ID,
		RestaurantID:  restaurant.ID,
		Points:        300,
		Type:          models.LoyaltyTxEarned,
		Description:   "Points earned from order ORD-20260801-ABCDEF12",
	}).Error)

	w := doJSON(t, r, "GET", "/loyalty/transactions", tokenFor(t, client), nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 300.0, data["points"])
	transactions := data["transactions"].([]interface{})
	assert.Len(t, transactions, 1)
}
