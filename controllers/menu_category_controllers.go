package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/caravane/restaurant-api/models"
	"github.com/caravane/restaurant-api/utils"
)

type MenuCategoryController struct {
	DB *gorm.DB
}

func NewMenuCategoryController(db *gorm.DB) *MenuCategoryController {
	return &MenuCategoryController{DB: db}
}

// menuForRestaurant loads a menu and verifies it belongs to the restaurant.
func (cc *MenuCategoryController) menuForRestaurant(restaurantID, menuID uint) (*models.Menu, error) {
	var menu models.Menu
	if err := cc.DB.Where("restaurant_id = ?", restaurantID).First(&menu, menuID).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

// CreateCategory adds a category to a menu.
func (cc *MenuCategoryController) CreateCategory(c *gin.Context) {
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

	if _, err := cc.menuForRestaurant(restaurantID, menuID); err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name         string `json:"name" binding:"required"`
		Description  string `json:"description"`
		DisplayOrder int    `json:"display_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category := models.MenuCategory{
		MenuID:       menuID,
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	}

	if err := cc.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Category created successfully", category)
}

// UpdateCategory updates a category's fields.
func (cc *MenuCategoryController) UpdateCategory(c *gin.Context) {
	restaurantID, ok := parseUintParam(c, "restaurant_id")
	if !ok {
		return
	}
	menuID, ok := parseUintParam(c, "menu_id")
	if !ok {
		return
	}
	categoryID, ok := parseUintParam(c, "category_id")
	if !ok {
		return
	}

	if !canManageRestaurant(c, restaurantID) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	if _, err := cc.menuForRestaurant(restaurantID, menuID); err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var category models.MenuCategory
	if err := cc.DB.Where("menu_id = ?", menuID).First(&category, categoryID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name         string `json:"name"`
		Description  string `json:"description"`
		DisplayOrder *int   `json:"display_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Description != "" {
		category.Description = req.Description
	}
	if req.DisplayOrder != nil {
		category.DisplayOrder = *req.DisplayOrder
	}

	if err := cc.DB.Save(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

// DeleteCategory removes a category and its dishes.
func (cc *MenuCategoryController) DeleteCategory(c *gin.Context) {
	restaurantID, ok := parseUintParam(c, "restaurant_id")
	if !ok {
		return
	}
	menuID, ok := parseUintParam(c, "menu_id")
	if !ok {
		return
	}
	categoryID, ok := parseUintParam(c, "category_id")
	if !ok {
		return
	}

	if !canManageRestaurant(c, restaurantID) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	if _, err := cc.menuForRestaurant(restaurantID, menuID); err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var category models.MenuCategory
	if err := cc.DB.Where("menu_id = ?", menuID).First(&category, categoryID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", category.ID).Delete(&models.Dish{}).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{
		"id": category.ID,
	})
}
