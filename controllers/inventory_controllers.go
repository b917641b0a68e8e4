package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/caravane/restaurant-api/models"
	"github.com/caravane/restaurant-api/utils"
)

type InventoryController struct {
	DB *gorm.DB
}

func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{DB: db}
}

// CreateItem registers an inventory item for a restaurant.
func (ic *InventoryController) CreateItem(c *gin.Context) {
	restaurantID, ok := parseUintParam(c, "restaurant_id")
	if !ok {
		return
	}

	if !canManageRestaurant(c, restaurantID) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var req struct {
		Name         string  `json:"name" binding:"required"`
		Category     string  `json:"category"`
		Unit         string  `json:"unit" binding:"required"`
		CurrentStock float64 `json:"current_stock" binding:"min=0"`
		MinimumStock float64 `json:"minimum_stock" binding:"min=0"`
		UnitPrice    float64 `json:"unit_price" binding:"min=0"`
		Supplier     string  `json:"supplier"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.InventoryItem{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Category:     req.Category,
		Unit:         req.Unit,
		CurrentStock: req.CurrentStock,
		MinimumStock: req.MinimumStock,
		UnitPrice:    req.UnitPrice,
		Supplier:     req.Supplier,
		IsActive:     true,
	}

	if err := ic.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Inventory item created: %s (restaurant=%d)", item.Name, restaurantID)
	utils.RespondJSON(c, http.StatusCreated, "Inventory item created", item)
}

// GetItems lists a restaurant's inventory.
func (ic *InventoryController) GetItems(c *gin.Context) {
	restaurantID, ok := parseUintParam(c, "restaurant_id")
	if !ok {
		return
	}

	if !canManageRestaurant(c, restaurantID) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var items []models.InventoryItem
	query := ic.DB.Where("restaurant_id = ? AND is_active = ?", restaurantID, true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("name").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Inventory items", items)
}

// GetLowStockItems lists items at or below their minimum stock level.
func (ic *InventoryController) GetLowStockItems(c *gin.Context) {
	restaurantID, ok := parseUintParam(c, "restaurant_id")
	if !ok {
		return
	}

	if !canManageRestaurant(c, restaurantID) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var items []models.InventoryItem
	if err := ic.DB.
		Where("restaurant_id = ? AND is_active = ? AND current_stock <= minimum_stock", restaurantID, true).
		Order("name").
		Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Low stock items", items)
}

// UpdateItem updates an inventory item's attributes.
func (ic *InventoryController) UpdateItem(c *gin.Context) {
	restaurantID, ok := parseUintParam(c, "restaurant_id")
	if !ok {
		return
	}
	itemID, ok := parseUintParam(c, "item_id")
	if !ok {
		return
	}

	if !canManageRestaurant(c, restaurantID) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var item models.InventoryItem
	if err := ic.DB.Where("restaurant_id = ?", restaurantID).First(&item, itemID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name         string   `json:"name"`
		Category     string   `json:"category"`
		Unit         string   `json:"unit"`
		MinimumStock *float64 `json:"minimum_stock"`
		UnitPrice    *float64 `json:"unit_price"`
		Supplier     string   `json:"supplier"`
		IsActive     *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Category != "" {
		item.Category = req.Category
	}
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	if req.MinimumStock != nil {
		item.MinimumStock = *req.MinimumStock
	}
	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
	}
	if req.Supplier != "" {
		item.Supplier = req.Supplier
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := ic.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Inventory item updated", item)
}

// AdjustStock applies a delta to an item's stock, positive for restock and
// negative for consumption. The stock can never go below zero.
func (ic *InventoryController) AdjustStock(c *gin.Context) {
	restaurantID, ok := parseUintParam(c, "restaurant_id")
	if !ok {
		return
	}
	itemID, ok := parseUintParam(c, "item_id")
	if !ok {
		return
	}

	if !canManageRestaurant(c, restaurantID) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var req struct {
		Delta  float64 `json:"delta" binding:"required"`
		Reason string  `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.InventoryItem
	err := ic.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("restaurant_id = ?", restaurantID).
			First(&item, itemID).Error; err != nil {
			return err
		}
		if item.CurrentStock+req.Delta < 0 {
			return errors.New("stock cannot go below zero")
		}
		item.CurrentStock += req.Delta
		return tx.Save(&item).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	utils.InfoLogger.Printf("Inventory item %d stock adjusted by %.2f (%s)", item.ID, req.Delta, req.Reason)
	utils.RespondJSON(c, http.StatusOK, "Stock adjusted", gin.H{
		"item":      item,
		"low_stock": item.IsLowStock(),
	})
}
