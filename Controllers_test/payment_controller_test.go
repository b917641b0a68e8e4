package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caravane/restaurant-api/models"
)

func TestRecordPaymentMarksOrderPaid(t *testing.T) {
	db, r := setupTestEnv(t)
	restaurant, _ := seedRestaurantWithMenu(t, db)
	restaurantID := restaurant.ID
	waiter := createUser(t, db, models.RoleWaiter, "waitersecret", &restaurantID)

	order := models.Order{
		OrderNumber:  "ORD-20260815-PAYTEST1",
		RestaurantID: restaurant.ID,
		Type:         models.OrderTypeDineIn,
		Status:       models.OrderStatusCompleted,
		Subtotal:     42.50,
		TotalAmount:  42.50,
	}
	require.NoError(t, db.Create(&order).Error)

	url := fmt.Sprintf("/orders/%d/payments", order.ID)
	w := doJSON(t, r, "POST", url, tokenFor(t, waiter), map[string]interface{}{
		"amount":         42.50,
		"method":         "CARD",
		"transaction_id": "tx-123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPaid, reloaded.PaymentStatus)

	// Paying twice is rejected.
	w = doJSON(t, r, "POST", url, tokenFor(t, waiter), map[string]interface{}{
		"amount": 42.50,
		"method": "CASH",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "GET", url, tokenFor(t, waiter), nil)
	require.Equal(t, http.StatusOK, w.Code)
	payments := decodeResponse(t, w)["data"].([]interface{})
	require.Len(t, payments, 1)
	assert.Equal(t, 42.5, payments[0].(map[string]interface{})["amount"])
}

func TestRecordPaymentValidations(t *testing.T) {
	db, r := setupTestEnv(t)
	restaurant, _ := seedRestaurantWithMenu(t, db)
	restaurantID := restaurant.ID
	waiter := createUser(t, db, models.RoleWaiter, "waitersecret", &restaurantID)
	token := tokenFor(t, waiter)

	order := models.Order{
		OrderNumber:  "ORD-20260815-PAYTEST2",
		RestaurantID: restaurant.ID,
		Type:         models.OrderTypeDineIn,
		Status:       models.OrderStatusReady,
		Subtotal:     30,
		TotalAmount:  30,
	}
	require.NoError(t, db.Create(&order).Error)
	url := fmt.Sprintf("/orders/%d/payments", order.ID)

	// Amount below the order total.
	w := doJSON(t, r, "POST", url, token, map[string]interface{}{
		"amount": 20.0,
		"method": "CASH",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	cancelled := models.Order{
		OrderNumber:  "ORD-20260815-PAYTEST3",
		RestaurantID: restaurant.ID,
		Type:         models.OrderTypeDineIn,
		Status:       models.OrderStatusCancelled,
		Subtotal:     30,
		TotalAmount:  30,
	}
	require.NoError(t, db.Create(&cancelled).Error)

	w = doJSON(t, r, "POST", fmt.Sprintf("/orders/%d/payments", cancelled.ID), token, map[string]interface{}{
		"amount": 30.0,
		"method": "CASH",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Clients cannot reach the payment endpoints at all.
	client := createUser(t, db, models.RoleClient, "clientsecret", nil)
	w = doJSON(t, r, "POST", url, tokenFor(t, client), map[string]interface{}{
		"amount": 30.0,
		"method": "CASH",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Staff of another restaurant cannot record payments here.
	other := models.Restaurant{Name: "Elsewhere", IsActive: true}
	require.NoError(t, db.Create(&other).Error)
	otherID := other.ID
	outsider := createUser(t, db, models.RoleWaiter, "outsiderpass", &otherID)
	w = doJSON(t, r, "POST", url, tokenFor(t, outsider), map[string]interface{}{
		"amount": 30.0,
		"method": "CASH",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
