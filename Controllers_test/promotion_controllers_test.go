package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caravane/restaurant-api/models"
)

func TestCreatePromotionRequiresManager(t *testing.T) {
	db, r := setupTestEnv(t)
	restaurant, _ := seedRestaurantWithMenu(t, db)
	client := createUser(t, db, models.RoleClient, "clientsecret", nil)

	w := doJSON(t, r, "POST", "/promotions", tokenFor(t, client), map[string]interface{}{
		"restaurant_id":  restaurant.ID,
		"title":          "Ten Percent Off",
		"type":           models.PromotionTypeDiscount,
		"discount_type":  models.DiscountTypePercentage,
		"discount_value": 10,
		"start_date":     time.Now().Add(-time.Hour),
		"end_date":       time.Now().Add(24 * time.Hour),
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateAndListPromotions(t *testing.T) {
	db, r := setupTestEnv(t)
	restaurant, _ := seedRestaurantWithMenu(t, db)
	restaurantID := restaurant.ID
	manager := createUser(t, db, models.RoleManager, "managersecret", &restaurantID)

	w := doJSON(t, r, "POST", "/promotions", tokenFor(t, manager), map[string]interface{}{
		"restaurant_id":  restaurant.ID,
		"title":          "Ten Percent Off",
		"type":           models.PromotionTypeDiscount,
		"discount_type":  models.DiscountTypePercentage,
		"discount_value": 10,
		"min_order_amount": 20,
		"start_date":     time.Now().Add(-time.Hour),
		"end_date":       time.Now().Add(24 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Active promotions are public.
	w = doJSON(t, r, "GET", "/promotions", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].([]interface{})
	require.Len(t, data, 1)
}

func TestCreatePromotionValidation(t *testing.T) {
	db, r := setupTestEnv(t)
	restaurant, _ := seedRestaurantWithMenu(t, db)
	restaurantID := restaurant.ID
	manager := createUser(t, db, models.RoleManager, "managersecret", &restaurantID)

	// Percentage above 100 is rejected.
	w := doJSON(t, r, "POST", "/promotions", tokenFor(t, manager), map[string]interface{}{
		"restaurant_id":  restaurant.ID,
		"title":          "Everything Free",
		"type":           models.PromotionTypeDiscount,
		"discount_type":  models.DiscountTypePercentage,
		"discount_value": 150,
		"start_date":     time.Now().Add(-time.Hour),
		"end_date":       time.Now().Add(24 * time.Hour),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// End before start is rejected.
	w = doJSON(t, r, "POST", "/promotions", tokenFor(t, manager), map[string]interface{}{
		"restaurant_id":  restaurant.ID,
		"title":          "Backwards",
		"type":           models.PromotionTypeDiscount,
		"discount_type":  models.DiscountTypePercentage,
		"discount_value": 10,
		"start_date":     time.Now().Add(24 * time.Hour),
		"end_date":       time.Now().Add(-time.Hour),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalculateDiscountOverHTTP(t *testing.T) {
	db, r := setupTestEnv(t)
	restaurant, _ := seedRestaurantWithMenu(t, db)
	restaurantID := restaurant.ID
	manager := createUser(t, db, models.RoleManager, "managersecret", &restaurantID)

	minOrder := 20.0
	promo := models.Promotion{
		RestaurantID:   restaurant.ID,
		Title:          "Ten Percent Off",
		Type:           models.PromotionTypeDiscount,
		DiscountType:   models.DiscountTypePercentage,
		DiscountValue:  10,
		MinOrderAmount: &minOrder,
		StartDate:      time.Now().Add(-time.Hour),
		EndDate:        time.Now().Add(24 * time.Hour),
		IsActive:       true,
	}
	require.NoError(t, db.Create(&promo).Error)

	w := doJSON(t, r, "POST", "/promotions/calculate", tokenFor(t, manager), map[string]interface{}{
		"promotion_id": promo.ID,
		"subtotal":     50.00,
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 5.00, data["discount"])
	assert.Equal(t, 45.00, data["total"])

	// Previewing never consumes a use.
	var reloaded models.Promotion
	require.NoError(t, db.First(&reloaded, promo.ID).Error)
	assert.Equal(t, 0, reloaded.CurrentUses)
}

func TestUpdatePromotionCannotLowerMaxUsesBelowCurrentUses(t *testing.T) {
	db, r := setupTestEnv(t)
	restaurant, _ := seedRestaurantWithMenu(t, db)
	restaurantID := restaurant.ID
	manager := createUser(t, db, models.RoleManager, "managersecret", &restaurantID)

	maxUses := 10
	promo := models.Promotion{
		RestaurantID:  restaurant.ID,
		Title:         "Well Used",
		Type:          models.PromotionTypeDiscount,
		DiscountType:  models.DiscountTypePercentage,
		DiscountValue: 10,
		StartDate:     time.Now().Add(-time.Hour),
		EndDate:       time.Now().Add(24 * time.Hour),
		MaxUses:       &maxUses,
		CurrentUses:   5,
		IsActive:      true,
	}
	require.NoError(t, db.Create(&promo).Error)
	url := fmt.Sprintf("/promotions/%d", promo.ID)

	w := doJSON(t, r, "PATCH", url, tokenFor(t, manager), map[string]interface{}{
		"restaurant_id":  restaurant.ID,
		"title":          "Well Used",
		"type":           models.PromotionTypeDiscount,
		"discount_type":  models.DiscountTypePercentage,
		"discount_value": 10,
		"start_date":     time.Now().Add(-time.Hour),
		"end_date":       time.Now().Add(24 * time.Hour),
		"max_uses":       3,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var reloaded models.Promotion
	require.NoError(t, db.First(&reloaded, promo.ID).Error)
	require.NotNil(t, reloaded.MaxUses)
	assert.Equal(t, 10, *reloaded.MaxUses)

	// Raising the cap is fine.
	w = doJSON(t, r, "PATCH", url, tokenFor(t, manager), map[string]interface{}{
		"restaurant_id":  restaurant.ID,
		"title":          "Well Used",
		"type":           models.PromotionTypeDiscount,
		"discount_type":  models.DiscountTypePercentage,
		"discount_value": 10,
		"start_date":     time.Now().Add(-time.Hour),
		"end_date":       time.Now().Add(24 * time.Hour),
		"max_uses":       20,
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestDeactivatePromotionHidesItFromPublicList(t *testing.T) {
	db, r := setupTestEnv(t)
	restaurant, _ := seedRestaurantWithMenu(t, db)
	restaurantID := restaurant.ID
	manager := createUser(t, db, models.RoleManager, "managersecret", &restaurantID)

	promo := models.Promotion{
		RestaurantID:  restaurant.ID,
		Title:         "Short Lived",
		Type:          models.PromotionTypeDiscount,
		DiscountType:  models.DiscountTypeFixedAmount,
		DiscountValue: 5,
		StartDate:     time.Now().Add(-time.Hour),
		EndDate:       time.Now().Add(24 * time.Hour),
		IsActive:      true,
	}
	require.NoError(t, db.Create(&promo).Error)

	w := doJSON(t, r, "DELETE", fmt.Sprintf("/promotions/%d", promo.ID), tokenFor(t, manager), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "GET", "/promotions", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].([]interface{})
	assert.Empty(t, data)
}
