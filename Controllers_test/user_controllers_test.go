package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caravane/restaurant-api/models"
)

func TestRegisterAndLogin(t *testing.T) {
	_, r := setupTestEnv(t)

	w := doJSON(t, r, "POST", "/register", "", map[string]interface{}{
		"first_name": "Amelie",
		"last_name":  "Durand",
		"email":      "amelie@example.com",
		"password":   "supersecret1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	response := decodeResponse(t, w)
	assert.Equal(t, "User registered", response["message"])

	w = doJSON(t, r, "POST", "/login", "", map[string]string{
		"email":    "amelie@example.com",
		"password": "supersecret1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	response = decodeResponse(t, w)
	data := response["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, models.RoleClient, data["role"])
}

func TestLoginRejectsBadPassword(t *testing.T) {
	db, r := setupTestEnv(t)
	user := createUser(t, db, models.RoleClient, "correcthorse", nil)

	w := doJSON(t, r, "POST", "/login", "", map[string]string{
		"email":    user.Email,
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db, r := setupTestEnv(t)
	user := createUser(t, db, models.RoleClient, "whatever12", nil)

	w := doJSON(t, r, "POST", "/register", "", map[string]interface{}{
		"first_name": "Copy",
		"last_name":  "Cat",
		"email":      user.Email,
		"password":   "supersecret1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetProfileRequiresToken(t *testing.T) {
	_, r := setupTestEnv(t)

	w := doJSON(t, r, "GET", "/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetProfile(t *testing.T) {
	db, r := setupTestEnv(t)
	user := createUser(t, db, models.RoleClient, "supersecret1", nil)

	w := doJSON(t, r, "GET", "/profile", tokenFor(t, user), nil)
	require.Equal(t, http.StatusOK, w.Code)

	response := decodeResponse(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, user.Email, data["email"])
	assert.Equal(t, models.RoleClient, data["role"])
}

func TestDeactivatedAccountCannotAuthenticate(t *testing.T) {
	db, r := setupTestEnv(t)
	user := createUser(t, db, models.RoleClient, "supersecret1", nil)
	token := tokenFor(t, user)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

	w := doJSON(t, r, "GET", "/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminUserManagement(t *testing.T) {
	db, r := setupTestEnv(t)
	admin := createUser(t, db, models.RoleAdmin, "adminsecret1", nil)
	client := createUser(t, db, models.RoleClient, "clientsecret", nil)

	restaurant := models.Restaurant{Name: "Bistro", IsActive: true}
	require.NoError(t, db.Create(&restaurant).Error)

	// A client cannot reach admin routes.
	w := doJSON(t, r, "GET", "/admin/users", tokenFor(t, client), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, "GET", "/admin/users", tokenFor(t, admin), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "POST", "/admin/users/staff", tokenFor(t, admin), map[string]interface{}{
		"first_name":    "Jules",
		"last_name":     "Verne",
		"email":         "jules@example.com",
		"password":      "staffsecret1",
		"role":          models.RoleWaiter,
		"restaurant_id": restaurant.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var staff models.User
	require.NoError(t, db.Where("email = ?", "jules@example.com").First(&staff).Error)
	assert.Equal(t, models.RoleWaiter, staff.Role)
	require.NotNil(t, staff.RestaurantID)
	assert.Equal(t, restaurant.ID, *staff.RestaurantID)
}
