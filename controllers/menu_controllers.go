package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/caravane/restaurant-api/models"
	"github.com/caravane/restaurant-api/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// CreateMenu adds a menu to a restaurant.
func (mc *MenuController) CreateMenu(c *gin.Context) {
	restaurantID, ok := parseUintParam(c, "restaurant_id")
	if !ok {
		return
	}

	if !canManageRestaurant(c, restaurantID) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var restaurant models.Restaurant
	if err := mc.DB.First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	menu := models.Menu{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Description:  req.Description,
		IsActive:     true,
	}

	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Menu created: %s (restaurant=%d)", menu.Name, restaurantID)
	utils.RespondJSON(c, http.StatusCreated, "Menu created successfully", menu)
}

// GetMenus lists a restaurant's menus with categories and dishes.
func (mc *MenuController) GetMenus(c *gin.Context) {
	restaurantID, ok := parseUintParam(c, "restaurant_id")
	if !ok {
		return
	}

	var menus []models.Menu
	err := mc.DB.
		Where("restaurant_id = ? AND is_active = ?", restaurantID, true).
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("menu_categories.display_order")
		}).
		Preload("Categories.Dishes", func(db *gorm.DB) *gorm.DB {
			return db.Order("dishes.display_order")
		}).
		Find(&menus).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// UpdateMenu updates a menu's name, description or active flag.
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	restaurantID, ok := parseUintParam(c, "restaurant_id")
	if !ok {
		return
	}
	menuID, ok := parseUintParam(c, "menu_id")
	if !ok {
		return
	}

	if !canManageRestaurant(c, restaurantID) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var menu models.Menu
	if err := mc.DB.Where("restaurant_id = ?", restaurantID).First(&menu, menuID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		IsActive    *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != "" {
		menu.Name = req.Name
	}
	if req.Description != "" {
		menu.Description = req.Description
	}
	if req.IsActive != nil {
		menu.IsActive = *req.IsActive
	}

	if err := mc.DB.Save(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

// DeleteMenu removes a menu with its categories and dishes.
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	restaurantID, ok := parseUintParam(c, "restaurant_id")
	if !ok {
		return
	}
	menuID, ok := parseUintParam(c, "menu_id")
	if !ok {
		return
	}

	if !canManageRestaurant(c, restaurantID) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var menu models.Menu
	if err := mc.DB.Where("restaurant_id = ?", restaurantID).First(&menu, menuID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	err := mc.DB.Transaction(func(tx *gorm.DB) error {
		var categoryIDs []uint
		if err := tx.Model(&models.MenuCategory{}).
			Where("menu_id = ?", menu.ID).
			Pluck("id", &categoryIDs).Error; err != nil {
			return err
		}
		if len(categoryIDs) > 0 {
			if err := tx.Where("category_id IN ?", categoryIDs).Delete(&models.Dish{}).Error; err != nil {
				return err
			}
			if err := tx.Where("menu_id = ?", menu.ID).Delete(&models.MenuCategory{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&menu).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Menu %d deleted", menu.ID)
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", gin.H{
		"id": menu.ID,
	})
}
