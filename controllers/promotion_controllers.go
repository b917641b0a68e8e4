package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/caravane/restaurant-api/models"
	"github.com/caravane/restaurant-api/services"
	"github.com/caravane/restaurant-api/utils"
)

type PromotionController struct {
	DB       *gorm.DB
	Discount *services.DiscountService
}

func NewPromotionController(db *gorm.DB) *PromotionController {
	return &PromotionController{
		DB:       db,
		Discount: services.NewDiscountService(db),
	}
}

type promotionRequest struct {
	RestaurantID   uint      `json:"restaurant_id" binding:"required"`
	Title          string    `json:"title" binding:"required"`
	Description    string    `json:"description"`
	Type           string    `json:"type" binding:"required"`
	DiscountType   string    `json:"discount_type" binding:"required"`
	DiscountValue  float64   `json:"discount_value" binding:"required,gt=0"`
	MinOrderAmount *float64  `json:"min_order_amount"`
	StartDate      time.Time `json:"start_date" binding:"required"`
	EndDate        time.Time `json:"end_date" binding:"required"`
	MaxUses        *int      `json:"max_uses"`
	DishIDs        []uint    `json:"dish_ids"`
}

func (req *promotionRequest) validate() error {
	switch req.DiscountType {
	case models.DiscountTypePercentage, models.DiscountTypeFixedAmount:
	default:
		return errors.New("discount_type must be PERCENTAGE or FIXED_AMOUNT")
	}
	if req.DiscountType == models.DiscountTypePercentage && req.DiscountValue > 100 {
		return errors.New("percentage discount cannot exceed 100")
	}
	if !req.EndDate.After(req.StartDate) {
		return errors.New("end_date must be after start_date")
	}
	return nil
}

// CreatePromotion registers a promotion, manager or admin only.
func (pc *PromotionController) CreatePromotion(c *gin.Context) {
	var req promotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !canManageRestaurant(c, req.RestaurantID) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}
	var restaurant models.Restaurant
	if err := pc.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("restaurant not found"))
		return
	}

	promotion := models.Promotion{
		RestaurantID:   req.RestaurantID,
		Title:          req.Title,
		Description:    req.Description,
		Type:           req.Type,
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		MinOrderAmount: req.MinOrderAmount,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		MaxUses:        req.MaxUses,
		IsActive:       true,
	}
	for _, dishID := range req.DishIDs {
		promotion.Dishes = append(promotion.Dishes, models.PromotionDish{DishID: dishID})
	}

	if err := pc.DB.Create(&promotion).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Promotion created: %s (id=%d)", promotion.Title, promotion.ID)
	utils.RespondJSON(c, http.StatusCreated, "Promotion created successfully", promotion)
}

// GetActivePromotions lists promotions currently in their validity window.
func (pc *PromotionController) GetActivePromotions(c *gin.Context) {
	now := time.Now()
	var promotions []models.Promotion
	err := pc.DB.Preload("Dishes").
		Where("is_active = ? AND start_date <= ? AND end_date > ?", true, now, now).
		Find(&promotions).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active promotions", promotions)
}

// GetAllPromotions lists every promotion, staff only.
func (pc *PromotionController) GetAllPromotions(c *gin.Context) {
	var promotions []models.Promotion
	if err := pc.DB.Preload("Dishes").Order("start_date DESC").Find(&promotions).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of promotions", promotions)
}

// GetPromotionByID returns one promotion.
func (pc *PromotionController) GetPromotionByID(c *gin.Context) {
	promotionID, ok := parseUintParam(c, "promotion_id")
	if !ok {
		return
	}

	var promotion models.Promotion
	if err := pc.DB.Preload("Dishes").First(&promotion, promotionID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Promotion detail", promotion)
}

// UpdatePromotion updates a promotion, manager or admin only.
func (pc *PromotionController) UpdatePromotion(c *gin.Context) {
	promotionID, ok := parseUintParam(c, "promotion_id")
	if !ok {
		return
	}

	var promotion models.Promotion
	if err := pc.DB.First(&promotion, promotionID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if !canManageRestaurant(c, promotion.RestaurantID) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var req promotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.MaxUses != nil && *req.MaxUses < promotion.CurrentUses {
		utils.RespondError(c, http.StatusBadRequest,
			errors.New("max_uses cannot be lower than the current use count"))
		return
	}

	promotion.Title = req.Title
	promotion.Description = req.Description
	promotion.Type = req.Type
	promotion.DiscountType = req.DiscountType
	promotion.DiscountValue = req.DiscountValue
	promotion.MinOrderAmount = req.MinOrderAmount
	promotion.StartDate = req.StartDate
	promotion.EndDate = req.EndDate
	promotion.MaxUses = req.MaxUses

	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&promotion).Error; err != nil {
			return err
		}
		if req.DishIDs != nil {
			if err := tx.Where("promotion_id = ?", promotion.ID).Delete(&models.PromotionDish{}).Error; err != nil {
				return err
			}
			for _, dishID := range req.DishIDs {
				pd := models.PromotionDish{PromotionID: promotion.ID, DishID: dishID}
				if err := tx.Create(&pd).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Promotion updated", promotion)
}

// DeactivatePromotion disables a promotion without deleting its history.
func (pc *PromotionController) DeactivatePromotion(c *gin.Context) {
	promotionID, ok := parseUintParam(c, "promotion_id")
	if !ok {
		return
	}

	var promotion models.Promotion
	if err := pc.DB.First(&promotion, promotionID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if !canManageRestaurant(c, promotion.RestaurantID) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	promotion.IsActive = false
	if err := pc.DB.Save(&promotion).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Promotion %d deactivated", promotion.ID)
	utils.RespondJSON(c, http.StatusOK, "Promotion deactivated", gin.H{
		"id": promotion.ID,
	})
}

// CalculateDiscount previews the discount a promotion would yield on a cart.
func (pc *PromotionController) CalculateDiscount(c *gin.Context) {
	var req struct {
		PromotionID uint    `json:"promotion_id" binding:"required"`
		Subtotal    float64 `json:"subtotal" binding:"required,gt=0"`
		DishIDs     []uint  `json:"dish_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	discount, err := pc.Discount.CalculateDiscount(req.PromotionID, req.Subtotal, req.DishIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Discount calculated", gin.H{
		"promotion_id": req.PromotionID,
		"subtotal":     req.Subtotal,
		"discount":     discount,
		"total":        utils.RoundCurrency(req.Subtotal - discount),
	})
}
