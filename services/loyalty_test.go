package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/caravane/restaurant-api/models"
)

func seedCompletedOrder(t *testing.T, db *gorm.DB, restaurantID uint, userID *uint, total float64) models.Order {
	t.Helper()
	order := models.Order{
		OrderNumber:  newOrderNumber(),
		UserID:       userID,
		RestaurantID: restaurantID,
		Type:         models.OrderTypeDineIn,
		Status:       models.OrderStatusCompleted,
		Subtotal:     total,
		TotalAmount:  total,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}
	return order
}

func TestGetOrCreateCard(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, models.RoleClient, nil)

	svc := NewLoyaltyService(db)
	card, err := svc.GetOrCreateCard(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, card.Points)

	again, err := svc.GetOrCreateCard(user.ID)
	require.NoError(t, err)
	assert.Equal(t, card.ID, again.ID)
}

func TestAwardPointsForOrder(t *testing.T) {
	db := openTestDB(t)
	restaurant := seedRestaurant(t, db)
	user := seedUser(t, db, models.RoleClient, nil)
	userID := user.ID
	order := seedCompletedOrder(t, db, restaurant.ID, &userID, 123.45)

	svc := NewLoyaltyService(db)
	tx, err := svc.AwardPointsForOrder(order.ID)
	require.NoError(t, err)

	// One point per whole currency unit of the total.
	assert.Equal(t, 123, tx.Points)
	assert.Equal(t, models.LoyaltyTxEarned, tx.Type)

	card, err := svc.GetOrCreateCard(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 123, card.Points)
}

func TestAwardPointsForOrderIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	restaurant := seedRestaurant(t, db)
	user := seedUser(t, db, models.RoleClient, nil)
	userID := user.ID
	order := seedCompletedOrder(t, db, restaurant.ID, &userID, 80)

	svc := NewLoyaltyService(db)
	_, err := svc.AwardPointsForOrder(order.ID)
	require.NoError(t, err)

	_, err = svc.AwardPointsForOrder(order.ID)
	assert.ErrorIs(t, err, ErrValidation)

	card, err := svc.GetOrCreateCard(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 80, card.Points)
}

func TestAwardPointsRequiresCompletedOrder(t *testing.T) {
	db := openTestDB(t)
	restaurant := seedRestaurant(t, db)
	user := seedUser(t, db, models.RoleClient, nil)
	userID := user.ID

	order := models.Order{
		OrderNumber:  newOrderNumber(),
		UserID:       &userID,
		RestaurantID: restaurant.ID,
		Type:         models.OrderTypeDineIn,
		Status:       models.OrderStatusPending,
		TotalAmount:  50,
	}
	require.NoError(t, db.Create(&order).Error)

	svc := NewLoyaltyService(db)
	_, err := svc.AwardPointsForOrder(order.ID)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAwardPointsRejectsAnonymousOrder(t *testing.T) {
	db := openTestDB(t)
	restaurant := seedRestaurant(t, db)
	order := seedCompletedOrder(t, db, restaurant.ID, nil, 50)

	svc := NewLoyaltyService(db)
	_, err := svc.AwardPointsForOrder(order.ID)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRedeemPoints(t *testing.T) {
	db := openTestDB(t)
	restaurant := seedRestaurant(t, db)
	user := seedUser(t, db, models.RoleClient, nil)

	card := models.LoyaltyCard{UserID: user.ID, Points: 300}
	require.NoError(t, db.Create(&card).Error)

	svc := NewLoyaltyService(db)
	result, err := svc.RedeemPoints(user.ID, restaurant.ID, 250)
	require.NoError(t, err)

	assert.Equal(t, 250, result.PointsRedeemed)
	assert.Equal(t, 2.50, result.CreditAmount)
	assert.Equal(t, 50, result.RemainingPoints)

	var reloaded models.LoyaltyCard
	require.NoError(t, db.First(&reloaded, card.ID).Error)
	assert.Equal(t, 50, reloaded.Points)

	var tx models.LoyaltyTransaction
	require.NoError(t, db.Where("loyalty_card_id = ?", card.ID).First(&tx).Error)
	assert.Equal(t, -250, tx.Points)
	assert.Equal(t, models.LoyaltyTxRedeemed, tx.Type)
}

func TestRedeemPointsBelowMinimum(t *testing.T) {
	db := openTestDB(t)
	restaurant := seedRestaurant(t, db)
	user := seedUser(t, db, models.RoleClient, nil)

	card := models.LoyaltyCard{UserID: user.ID, Points: 300}
	require.NoError(t, db.Create(&card).Error)

	svc := NewLoyaltyService(db)
	_, err := svc.RedeemPoints(user.ID, restaurant.ID, 99)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRedeemPointsInsufficientBalance(t *testing.T) {
	db := openTestDB(t)
	restaurant := seedRestaurant(t, db)
	user := seedUser(t, db, models.RoleClient, nil)

	card := models.LoyaltyCard{UserID: user.ID, Points: 120}
	require.NoError(t, db.Create(&card).Error)

	svc := NewLoyaltyService(db)
	_, err := svc.RedeemPoints(user.ID, restaurant.ID, 200)
	assert.ErrorIs(t, err, ErrInsufficientPoints)

	var reloaded models.LoyaltyCard
	require.NoError(t, db.First(&reloaded, card.ID).Error)
	assert.Equal(t, 120, reloaded.Points)
}

func TestRedeemPointsWithoutCard(t *testing.T) {
	db := openTestDB(t)
	restaurant := seedRestaurant(t, db)
	user := seedUser(t, db, models.RoleClient, nil)

	svc := NewLoyaltyService(db)
	_, err := svc.RedeemPoints(user.ID, restaurant.ID, 100)
	assert.ErrorIs(t, err, ErrNotFound)
}
