package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/caravane/restaurant-api/middlewares"
	"github.com/caravane/restaurant-api/models"
	"github.com/caravane/restaurant-api/utils"
)

type RestaurantController struct {
	DB *gorm.DB
}

func NewRestaurantController(db *gorm.DB) *RestaurantController {
	return &RestaurantController{DB: db}
}

type restaurantRequest struct {
	Name           string                `json:"name" binding:"required"`
	Description    string                `json:"description"`
	Street         string                `json:"street"`
	City           string                `json:"city"`
	Phone          string                `json:"phone"`
	Email          string                `json:"email"`
	Website        string                `json:"website"`
	Latitude       *float64              `json:"latitude"`
	Longitude      *float64              `json:"longitude"`
	OperatingHours models.OperatingHours `json:"operating_hours"`
}

// CreateRestaurant registers a new restaurant, admin only.
func (rc *RestaurantController) CreateRestaurant(c *gin.Context) {
	var req restaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restaurant := models.Restaurant{
		Name:           req.Name,
		Description:    req.Description,
		Street:         req.Street,
		City:           req.City,
		Phone:          req.Phone,
		Email:          req.Email,
		Website:        req.Website,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		OperatingHours: req.OperatingHours,
		IsActive:       true,
	}

	if err := rc.DB.Create(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New restaurant created: %s (id=%d)", restaurant.Name, restaurant.ID)
	utils.RespondJSON(c, http.StatusCreated, "Restaurant created successfully", restaurant)
}

// GetAllRestaurants lists active restaurants, optionally filtered by city.
func (rc *RestaurantController) GetAllRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	query := rc.DB.Where("is_active = ?", true)
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}
	if err := query.Find(&restaurants).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of restaurants", restaurants)
}

// GetRestaurantByID returns one restaurant's details.
func (rc *RestaurantController) GetRestaurantByID(c *gin.Context) {
	restaurantID, ok := parseUintParam(c, "restaurant_id")
	if !ok {
		return
	}

	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant detail", restaurant)
}

// UpdateRestaurant updates restaurant data. Managers may only update their own.
func (rc *RestaurantController) UpdateRestaurant(c *gin.Context) {
	restaurantID, ok := parseUintParam(c, "restaurant_id")
	if !ok {
		return
	}

	if !canManageRestaurant(c, restaurantID) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req restaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restaurant.Name = req.Name
	restaurant.Description = req.Description
	restaurant.Street = req.Street
	restaurant.City = req.City
	restaurant.Phone = req.Phone
	restaurant.Email = req.Email
	restaurant.Website = req.Website
	restaurant.Latitude = req.Latitude
	restaurant.Longitude = req.Longitude
	restaurant.OperatingHours = req.OperatingHours

	if err := rc.DB.Save(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Restaurant %d updated", restaurant.ID)
	utils.RespondJSON(c, http.StatusOK, "Restaurant updated", restaurant)
}

// DeactivateRestaurant soft-disables a restaurant, admin only.
func (rc *RestaurantController) DeactivateRestaurant(c *gin.Context) {
	restaurantID, ok := parseUintParam(c, "restaurant_id")
	if !ok {
		return
	}

	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	restaurant.IsActive = false
	if err := rc.DB.Save(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Restaurant %d deactivated", restaurant.ID)
	utils.RespondJSON(c, http.StatusOK, "Restaurant deactivated", gin.H{
		"id": restaurant.ID,
	})
}

// canManageRestaurant reports whether the current user may manage the
// given restaurant. Admins manage everything, staff only their own.
func canManageRestaurant(c *gin.Context, restaurantID uint) bool {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return false
	}
	if user.Role == models.RoleAdmin {
		return true
	}
	if !user.IsStaff() || user.RestaurantID == nil {
		return false
	}
	return *user.RestaurantID == restaurantID
}
