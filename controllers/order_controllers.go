package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/caravane/restaurant-api/middlewares"
	"github.com/caravane/restaurant-api/models"
	"github.com/caravane/restaurant-api/services"
	"github.com/caravane/restaurant-api/utils"
)

type OrderController struct {
	DB     *gorm.DB
	Orders *services.OrderService
	Status *services.StatusService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		DB:     db,
		Orders: services.NewOrderService(db),
		Status: services.NewStatusService(db),
	}
}

type orderRequest struct {
	RestaurantID uint                      `json:"restaurant_id" binding:"required"`
	TableID      *uint                     `json:"table_id"`
	Type         string                    `json:"type" binding:"required"`
	Items        []services.OrderItemInput `json:"items" binding:"required"`
	Notes        string                    `json:"notes"`
	PromotionID  *uint                     `json:"promotion_id"`
}

// CreateOrder places an order for the authenticated user.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user not found in context"))
		return
	}

	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	userID := user.ID
	order, err := oc.Orders.CreateOrder(services.OrderInput{
		UserID:       &userID,
		RestaurantID: req.RestaurantID,
		TableID:      req.TableID,
		Type:         req.Type,
		Items:        req.Items,
		Notes:        req.Notes,
		PromotionID:  req.PromotionID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order %s created by user %d (total=%s)",
		order.OrderNumber, user.ID, utils.FormatCurrency(order.TotalAmount))
	utils.RespondJSON(c, http.StatusCreated, "Order created successfully", order)
}

// CreatePublicOrder places an anonymous dine-in order from a table QR scan.
func (oc *OrderController) CreatePublicOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.CreateOrder(services.OrderInput{
		UserID:       nil,
		RestaurantID: req.RestaurantID,
		TableID:      req.TableID,
		Type:         req.Type,
		Items:        req.Items,
		Notes:        req.Notes,
		PromotionID:  req.PromotionID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Anonymous order %s created (restaurant=%d)", order.OrderNumber, req.RestaurantID)
	utils.RespondJSON(c, http.StatusCreated, "Order created successfully", order)
}

// GetOrderByNumber is the public status lookup for QR customers.
func (oc *OrderController) GetOrderByNumber(c *gin.Context) {
	orderNumber := c.Param("order_number")

	var order models.Order
	if err := oc.DB.Preload("Items").Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", gin.H{
		"order_number":   order.OrderNumber,
		"status":         order.Status,
		"type":           order.Type,
		"total_amount":   order.TotalAmount,
		"payment_status": order.PaymentStatus,
		"items":          order.Items,
		"created_at":     order.CreatedAt,
	})
}

// GetMyOrders lists the authenticated user's order history.
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user not found in context"))
		return
	}

	var orders []models.Order
	query := oc.DB.Preload("Items").Where("user_id = ?", user.ID).Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetRestaurantOrders lists a restaurant's orders for staff.
func (oc *OrderController) GetRestaurantOrders(c *gin.Context) {
	restaurantID, ok := parseUintParam(c, "restaurant_id")
	if !ok {
		return
	}

	if !canManageRestaurant(c, restaurantID) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var orders []models.Order
	query := oc.DB.Preload("Items").Where("restaurant_id = ?", restaurantID).Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID returns one order for its owner or the restaurant's staff.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	orderID, ok := parseUintParam(c, "order_id")
	if !ok {
		return
	}

	user, okUser := middlewares.CurrentUser(c)
	if !okUser {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user not found in context"))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	isOwner := order.UserID != nil && *order.UserID == user.ID
	if !isOwner && !canManageRestaurant(c, order.RestaurantID) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus moves an order through its lifecycle.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseUintParam(c, "order_id")
	if !ok {
		return
	}

	user, okUser := middlewares.CurrentUser(c)
	if !okUser {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user not found in context"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Status.TransitionOrder(orderID, req.Status, services.Actor{
		UserID:       user.ID,
		Role:         user.Role,
		RestaurantID: user.RestaurantID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order %s moved to %s by user %d", order.OrderNumber, order.Status, user.ID)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}
