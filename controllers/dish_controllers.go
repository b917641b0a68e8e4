package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/caravane/restaurant-api/models"
	"github.com/caravane/restaurant-api/utils"
)

type DishController struct {
	DB *gorm.DB
}

func NewDishController(db *gorm.DB) *DishController {
	return &DishController{DB: db}
}

// categoryRestaurantID resolves the restaurant a category belongs to.
func (dc *DishController) categoryRestaurantID(categoryID uint) (uint, error) {
	var category models.MenuCategory
	if err := dc.DB.First(&category, categoryID).Error; err != nil {
		return 0, err
	}
	var menu models.Menu
	if err := dc.DB.First(&menu, category.MenuID).Error; err != nil {
		return 0, err
	}
	return menu.RestaurantID, nil
}

// CreateDish adds a dish to a category.
func (dc *DishController) CreateDish(c *gin.Context) {
	categoryID, ok := parseUintParam(c, "category_id")
	if !ok {
		return
	}

	restaurantID, err := dc.categoryRestaurantID(categoryID)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if !canManageRestaurant(c, restaurantID) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var req struct {
		Name            string  `json:"name" binding:"required"`
		Description     string  `json:"description"`
		Price           float64 `json:"price" binding:"required,gt=0"`
		Quantity        int     `json:"quantity" binding:"min=0"`
		PreparationTime int     `json:"preparation_time"`
		DisplayOrder    int     `json:"display_order"`
		ImageURL        string  `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	dish := models.Dish{
		CategoryID:      categoryID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Quantity:        req.Quantity,
		IsAvailable:     true,
		PreparationTime: req.PreparationTime,
		DisplayOrder:    req.DisplayOrder,
		ImageURL:        req.ImageURL,
	}

	if err := dc.DB.Create(&dish).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Dish created: %s (category=%d)", dish.Name, categoryID)
	utils.RespondJSON(c, http.StatusCreated, "Dish created successfully", dish)
}

// GetDish returns one dish.
func (dc *DishController) GetDish(c *gin.Context) {
	dishID, ok := parseUintParam(c, "dish_id")
	if !ok {
		return
	}

	var dish models.Dish
	if err := dc.DB.First(&dish, dishID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish detail", dish)
}

// UpdateDish updates a dish's fields.
func (dc *DishController) UpdateDish(c *gin.Context) {
	dishID, ok := parseUintParam(c, "dish_id")
	if !ok {
		return
	}

	var dish models.Dish
	if err := dc.DB.First(&dish, dishID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	restaurantID, err := dc.categoryRestaurantID(dish.CategoryID)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if !canManageRestaurant(c, restaurantID) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var req struct {
		Name            string   `json:"name"`
		Description     string   `json:"description"`
		Price           *float64 `json:"price"`
		Quantity        *int     `json:"quantity"`
		IsAvailable     *bool    `json:"is_available"`
		PreparationTime *int     `json:"preparation_time"`
		DisplayOrder    *int     `json:"display_order"`
		ImageURL        string   `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != "" {
		dish.Name = req.Name
	}
	if req.Description != "" {
		dish.Description = req.Description
	}
	if req.Price != nil {
		dish.Price = *req.Price
	}
	if req.Quantity != nil {
		dish.Quantity = *req.Quantity
	}
	if req.IsAvailable != nil {
		dish.IsAvailable = *req.IsAvailable
	}
	if req.PreparationTime != nil {
		dish.PreparationTime = *req.PreparationTime
	}
	if req.DisplayOrder != nil {
		dish.DisplayOrder = *req.DisplayOrder
	}
	if req.ImageURL != "" {
		dish.ImageURL = req.ImageURL
	}

	if err := dc.DB.Save(&dish).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dish updated", dish)
}

// DeleteDish removes a dish.
func (dc *DishController) DeleteDish(c *gin.Context) {
	dishID, ok := parseUintParam(c, "dish_id")
	if !ok {
		return
	}

	var dish models.Dish
	if err := dc.DB.First(&dish, dishID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	restaurantID, err := dc.categoryRestaurantID(dish.CategoryID)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if !canManageRestaurant(c, restaurantID) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	if err := dc.DB.Delete(&dish).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Dish %d deleted", dish.ID)
	utils.RespondJSON(c, http.StatusOK, "Dish deleted", gin.H{
		"id": dish.ID,
	})
}
