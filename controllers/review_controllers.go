package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/caravane/restaurant-api/middlewares"
	"github.com/caravane/restaurant-api/models"
	"github.com/caravane/restaurant-api/utils"
)

type ReviewController struct {
	DB *gorm.DB
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db}
}

// CreateReview posts a review for a restaurant or a specific dish. The review
// is marked verified when the author has a completed order at the restaurant.
func (rc *ReviewController) CreateReview(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user not found in context"))
		return
	}

	var req struct {
		RestaurantID uint   `json:"restaurant_id" binding:"required"`
		DishID       *uint  `json:"dish_id"`
		Rating       int    `json:"rating" binding:"required,min=1,max=5"`
		Comment      string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("restaurant not found"))
		return
	}

	if req.DishID != nil {
		var dish models.Dish
		if err := rc.DB.First(&dish, *req.DishID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, errors.New("dish not found"))
			return
		}
	}

	var completedOrders int64
	if err := rc.DB.Model(&models.Order{}).
		Where("user_id = ? AND restaurant_id = ? AND status = ?",
			user.ID, req.RestaurantID, models.OrderStatusCompleted).
		Count(&completedOrders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	review := models.Review{
		UserID:       user.ID,
		RestaurantID: req.RestaurantID,
		DishID:       req.DishID,
		Rating:       req.Rating,
		Comment:      req.Comment,
		IsVerified:   completedOrders > 0,
	}

	if err := rc.DB.Create(&review).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Review %d created by user %d (restaurant=%d, rating=%d)",
		review.ID, user.ID, review.RestaurantID, review.Rating)
	utils.RespondJSON(c, http.StatusCreated, "Review created successfully", review)
}

// GetRestaurantReviews lists a restaurant's reviews.
func (rc *ReviewController) GetRestaurantReviews(c *gin.Context) {
	restaurantID, ok := parseUintParam(c, "restaurant_id")
	if !ok {
		return
	}

	var reviews []models.Review
	query := rc.DB.Where("restaurant_id = ?", restaurantID).Order("created_at DESC")
	if c.Query("verified") == "true" {
		query = query.Where("is_verified = ?", true)
	}
	if err := query.Find(&reviews).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of reviews", reviews)
}

// GetRestaurantReviewStats aggregates rating statistics for a restaurant.
func (rc *ReviewController) GetRestaurantReviewStats(c *gin.Context) {
	restaurantID, ok := parseUintParam(c, "restaurant_id")
	if !ok {
		return
	}

	var stats struct {
		Count   int64   `json:"count"`
		Average float64 `json:"average"`
	}

	if err := rc.DB.Model(&models.Review{}).
		Where("restaurant_id = ?", restaurantID).
		Count(&stats.Count).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if stats.Count > 0 {
		var avg *float64
		if err := rc.DB.Model(&models.Review{}).
			Where("restaurant_id = ?", restaurantID).
			Select("AVG(rating)").Scan(&avg).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		if avg != nil {
			stats.Average = utils.RoundCurrency(*avg)
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Review statistics", stats)
}

// UpdateReview lets the author edit their review. Editing resets nothing;
// the verified flag is kept.
func (rc *ReviewController) UpdateReview(c *gin.Context) {
	reviewID, ok := parseUintParam(c, "review_id")
	if !ok {
		return
	}

	user, okUser := middlewares.CurrentUser(c)
	if !okUser {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user not found in context"))
		return
	}

	var review models.Review
	if err := rc.DB.First(&review, reviewID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if review.UserID != user.ID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var req struct {
		Rating  *int   `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("rating must be between 1 and 5"))
			return
		}
		review.Rating = *req.Rating
	}
	if req.Comment != "" {
		review.Comment = req.Comment
	}

	if err := rc.DB.Save(&review).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Review updated", review)
}

// DeleteReview removes a review. The author or an admin may delete it.
func (rc *ReviewController) DeleteReview(c *gin.Context) {
	reviewID, ok := parseUintParam(c, "review_id")
	if !ok {
		return
	}

	user, okUser := middlewares.CurrentUser(c)
	if !okUser {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user not found in context"))
		return
	}

	var review models.Review
	if err := rc.DB.First(&review, reviewID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if review.UserID != user.ID && user.Role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	if err := rc.DB.Delete(&review).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Review deleted", gin.H{
		"id": review.ID,
	})
}
