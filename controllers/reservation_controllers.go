package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/caravane/restaurant-api/middlewares"
	"github.com/caravane/restaurant-api/models"
	"github.com/caravane/restaurant-api/services"
	"github.com/caravane/restaurant-api/utils"
)

type ReservationController struct {
	DB           *gorm.DB
	Availability *services.AvailabilityService
	Status       *services.StatusService
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{
		DB:           db,
		Availability: services.NewAvailabilityService(db),
		Status:       services.NewStatusService(db),
	}
}

// CheckAvailability lists tables free for the requested window.
func (rc *ReservationController) CheckAvailability(c *gin.Context) {
	restaurantID, ok := parseUintParam(c, "restaurant_id")
	if !ok {
		return
	}

	var req struct {
		Start     time.Time `json:"start" binding:"required"`
		End       time.Time `json:"end" binding:"required"`
		PartySize int       `json:"party_size" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tables, err := rc.Availability.FindAvailableTables(restaurantID, req.Start, req.End, req.PartySize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Available tables", tables)
}

// CreateReservation books a table for the authenticated user.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user not found in context"))
		return
	}

	var req struct {
		RestaurantID    uint      `json:"restaurant_id" binding:"required"`
		TableID         *uint     `json:"table_id"`
		Start           time.Time `json:"start" binding:"required"`
		End             time.Time `json:"end" binding:"required"`
		PartySize       int       `json:"party_size" binding:"required,min=1"`
		SpecialRequests string    `json:"special_requests"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Availability.BookTable(
		user.ID, req.RestaurantID, req.TableID,
		req.Start, req.End, req.PartySize, req.SpecialRequests,
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Reservation %d created by user %d", reservation.ID, user.ID)
	utils.RespondJSON(c, http.StatusCreated, "Reservation created successfully", reservation)
}

// GetMyReservations lists the authenticated user's reservations.
func (rc *ReservationController) GetMyReservations(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user not found in context"))
		return
	}

	var reservations []models.Reservation
	query := rc.DB.Where("user_id = ?", user.ID).Order("reservation_start DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// GetRestaurantReservations lists a restaurant's reservations for staff.
func (rc *ReservationController) GetRestaurantReservations(c *gin.Context) {
	restaurantID, ok := parseUintParam(c, "restaurant_id")
	if !ok {
		return
	}

	if !canManageRestaurant(c, restaurantID) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var reservations []models.Reservation
	query := rc.DB.Where("restaurant_id = ?", restaurantID).Order("reservation_start")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if day := c.Query("date"); day != "" {
		parsed, err := time.Parse("2006-01-02", day)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid date, expected YYYY-MM-DD"))
			return
		}
		query = query.Where("reservation_start >= ? AND reservation_start < ?", parsed, parsed.AddDate(0, 0, 1))
	}
	if err := query.Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// UpdateReservationStatus moves a reservation through its lifecycle.
func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	reservationID, ok := parseUintParam(c, "reservation_id")
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

	reservation, err := rc.Status.TransitionReservation(reservationID, req.Status, services.Actor{
		UserID:       user.ID,
		Role:         user.Role,
		RestaurantID: user.RestaurantID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Reservation %d moved to %s by user %d", reservation.ID, reservation.Status, user.ID)
	utils.RespondJSON(c, http.StatusOK, "Reservation status updated", reservation)
}
