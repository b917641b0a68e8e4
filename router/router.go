package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/caravane/restaurant-api/controllers"
	"github.com/caravane/restaurant-api/middlewares"
	"github.com/caravane/restaurant-api/models"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	restaurantCtrl := controllers.NewRestaurantController(db)
	tableCtrl := controllers.NewTableController(db)
	menuCtrl := controllers.NewMenuController(db)
	categoryCtrl := controllers.NewMenuCategoryController(db)
	dishCtrl := controllers.NewDishController(db)
	orderCtrl := controllers.NewOrderController(db)
	reservationCtrl := controllers.NewReservationController(db)
	promotionCtrl := controllers.NewPromotionController(db)
	loyaltyCtrl := controllers.NewLoyaltyController(db)
	reviewCtrl := controllers.NewReviewController(db)
	inventoryCtrl := controllers.NewInventoryController(db)
	paymentCtrl := controllers.NewPaymentController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	authLimited := r.Group("/")
	authLimited.Use(middlewares.NewStrictRateLimiter())
	{
		authLimited.POST("/register", userCtrl.Register)
		authLimited.POST("/login", userCtrl.Login)
	}

	// Browsing needs no account.
	r.GET("/restaurants", restaurantCtrl.GetAllRestaurants)
	r.GET("/restaurants/:restaurant_id", restaurantCtrl.GetRestaurantByID)
	r.GET("/restaurants/:restaurant_id/menus", menuCtrl.GetMenus)
	r.GET("/restaurants/:restaurant_id/reviews", reviewCtrl.GetRestaurantReviews)
	r.GET("/restaurants/:restaurant_id/reviews/stats", reviewCtrl.GetRestaurantReviewStats)
	r.GET("/dishes/:dish_id", dishCtrl.GetDish)
	r.GET("/promotions", promotionCtrl.GetActivePromotions)
	r.POST("/promotions/calculate", promotionCtrl.CalculateDiscount)
	r.GET("/loyalty/program", loyaltyCtrl.GetProgramInfo)
	r.POST("/restaurants/:restaurant_id/availability", reservationCtrl.CheckAvailability)

	// Anonymous dine-in ordering via table QR codes.
	r.POST("/public/orders", orderCtrl.CreatePublicOrder)
	r.GET("/public/orders/:order_number", orderCtrl.GetOrderByNumber)
	r.GET("/restaurants/:restaurant_id/tables/:table_id/qrcode", tableCtrl.GetTableQRCode)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware(db))
	{
		auth.GET("/profile", userCtrl.GetProfile)
		auth.PATCH("/profile", userCtrl.UpdateProfile)

		auth.POST("/orders", orderCtrl.CreateOrder)
		auth.GET("/orders/my", orderCtrl.GetMyOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		auth.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)

		auth.POST("/reservations", reservationCtrl.CreateReservation)
		auth.GET("/reservations/my", reservationCtrl.GetMyReservations)
		auth.PATCH("/reservations/:reservation_id/status", reservationCtrl.UpdateReservationStatus)

		auth.GET("/loyalty/card", loyaltyCtrl.GetMyCard)
		auth.GET("/loyalty/transactions", loyaltyCtrl.GetMyTransactions)
		auth.POST("/loyalty/redeem", loyaltyCtrl.RedeemPoints)

		auth.POST("/reviews", reviewCtrl.CreateReview)
		auth.PATCH("/reviews/:review_id", reviewCtrl.UpdateReview)
		auth.DELETE("/reviews/:review_id", reviewCtrl.DeleteReview)
	}

	// ----------------------------------------------------------------
	//                      STAFF ROUTES
	// ----------------------------------------------------------------
	staff := r.Group("/")
	staff.Use(middlewares.AuthMiddleware(db), middlewares.RequireStaff())
	{
		staff.GET("/restaurants/:restaurant_id/orders", orderCtrl.GetRestaurantOrders)
		staff.GET("/restaurants/:restaurant_id/reservations", reservationCtrl.GetRestaurantReservations)

		staff.GET("/restaurants/:restaurant_id/tables", tableCtrl.GetTables)

		staff.POST("/orders/:order_id/payments", paymentCtrl.RecordPayment)
		staff.GET("/orders/:order_id/payments", paymentCtrl.GetOrderPayments)

		staff.GET("/restaurants/:restaurant_id/inventory", inventoryCtrl.GetItems)
		staff.GET("/restaurants/:restaurant_id/inventory/low-stock", inventoryCtrl.GetLowStockItems)
		staff.POST("/restaurants/:restaurant_id/inventory/:item_id/adjust", inventoryCtrl.AdjustStock)

		staff.POST("/loyalty/award", loyaltyCtrl.AwardPoints)
	}

	// ----------------------------------------------------------------
	//                      MANAGER ROUTES
	// ----------------------------------------------------------------
	manager := r.Group("/")
	manager.Use(middlewares.AuthMiddleware(db), middlewares.RequireManager())
	{
		manager.PATCH("/restaurants/:restaurant_id", restaurantCtrl.UpdateRestaurant)

		manager.POST("/restaurants/:restaurant_id/tables", tableCtrl.CreateTable)
		manager.PATCH("/restaurants/:restaurant_id/tables/:table_id", tableCtrl.UpdateTable)
		manager.DELETE("/restaurants/:restaurant_id/tables/:table_id", tableCtrl.DeleteTable)

		manager.POST("/restaurants/:restaurant_id/menus", menuCtrl.CreateMenu)
		manager.PATCH("/restaurants/:restaurant_id/menus/:menu_id", menuCtrl.UpdateMenu)
		manager.DELETE("/restaurants/:restaurant_id/menus/:menu_id", menuCtrl.DeleteMenu)

		manager.POST("/restaurants/:restaurant_id/menus/:menu_id/categories", categoryCtrl.CreateCategory)
		manager.PATCH("/restaurants/:restaurant_id/menus/:menu_id/categories/:category_id", categoryCtrl.UpdateCategory)
		manager.DELETE("/restaurants/:restaurant_id/menus/:menu_id/categories/:category_id", categoryCtrl.DeleteCategory)

		manager.POST("/categories/:category_id/dishes", dishCtrl.CreateDish)
		manager.PATCH("/dishes/:dish_id", dishCtrl.UpdateDish)
		manager.DELETE("/dishes/:dish_id", dishCtrl.DeleteDish)

		manager.POST("/promotions", promotionCtrl.CreatePromotion)
		manager.GET("/promotions/all", promotionCtrl.GetAllPromotions)
		manager.GET("/promotions/:promotion_id", promotionCtrl.GetPromotionByID)
		manager.PATCH("/promotions/:promotion_id", promotionCtrl.UpdatePromotion)
		manager.DELETE("/promotions/:promotion_id", promotionCtrl.DeactivatePromotion)

		manager.POST("/restaurants/:restaurant_id/inventory", inventoryCtrl.CreateItem)
		manager.PATCH("/restaurants/:restaurant_id/inventory/:item_id", inventoryCtrl.UpdateItem)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(db), middlewares.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/users", userCtrl.GetAllUsers)
		admin.POST("/users/staff", userCtrl.CreateStaff)
		admin.PATCH("/users/:user_id/active", userCtrl.SetUserActive)

		admin.POST("/restaurants", restaurantCtrl.CreateRestaurant)
		admin.DELETE("/restaurants/:restaurant_id", restaurantCtrl.DeactivateRestaurant)
	}

	return r
}
