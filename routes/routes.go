package routes

import (
	"foodnow-api/handlers"
	"foodnow-api/middleware"
	"foodnow-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler, jwt *middleware.JWT) {
	authRequired := middleware.AuthRequired(jwt)

	// ── Public routes ──────────────────────────────────────────────
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
	}

	public := r.Group("/api/public")
	{
		public.GET("/restaurants", h.ListRestaurants)
		public.GET("/restaurants/:id/menu", h.GetRestaurantMenu)
		public.GET("/order-lifecycle", h.GetOrderLifecycle)
	}

	// ── Authenticated routes ───────────────────────────────────────
	profile := r.Group("/api/profile", authRequired)
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin", authRequired, middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/applications/pending", h.ListPendingApplications)
		admin.POST("/applications/:id/approve", h.ApproveApplication)
		admin.POST("/applications/:id/reject", h.RejectApplication)
		admin.POST("/delivery-personnel", h.CreateDeliveryPersonnel)
		admin.GET("/delivery-agents", h.ListDeliveryAgents)
		admin.GET("/users", h.AdminGetAllUsers)
		admin.GET("/restaurants", h.AdminGetAllRestaurants)
		admin.GET("/orders", h.AdminGetAllOrders)
	}

	// Customers apply to become owners, so this one sits outside the owner group
	r.POST("/api/restaurant/apply", authRequired, middleware.RoleRequired(models.RoleCustomer), h.Apply)

	// ── Restaurant owner routes ────────────────────────────────────
	restaurant := r.Group("/api/restaurant", authRequired, middleware.RoleRequired(models.RoleRestaurantOwner))
	{
		restaurant.GET("/profile", h.GetMyRestaurant)
		restaurant.PUT("/profile", h.UpdateMyRestaurant)
		restaurant.PUT("/profile/image", h.UpdateRestaurantImage)
		restaurant.POST("/profile/upload-image", h.UploadRestaurantImage)
		restaurant.GET("/dashboard", h.GetDashboard)
		restaurant.GET("/reviews", h.GetRestaurantReviews)

		// Menu management
		restaurant.GET("/menu", h.GetMenu)
		restaurant.POST("/menu", h.AddMenuItem)
		restaurant.PUT("/menu/:itemId", h.UpdateMenuItem)
		restaurant.DELETE("/menu/:itemId", h.DeleteMenuItem)
		restaurant.PATCH("/menu/:itemId/availability", h.ToggleMenuItemAvailability)

		// Order management
		restaurant.GET("/orders", h.GetRestaurantOrders)
		restaurant.POST("/orders/:orderId/ready", h.MarkOrderReady)
	}

	r.POST("/api/files/upload", authRequired, middleware.RoleRequired(models.RoleRestaurantOwner), h.UploadFile)

	// ── Customer routes ────────────────────────────────────────────
	cart := r.Group("/api/cart", authRequired, middleware.RoleRequired(models.RoleCustomer))
	{
		cart.GET("", h.GetCart)
		cart.DELETE("", h.ClearCart)
		cart.POST("/items", h.AddCartItem)
		cart.PUT("/items/:foodItemId", h.UpdateCartItem)
		cart.DELETE("/items/:foodItemId", h.RemoveCartItem)
	}

	orders := r.Group("/api/orders", authRequired, middleware.RoleRequired(models.RoleCustomer))
	{
		orders.POST("", h.PlaceOrder)
		orders.GET("/my-orders", h.GetMyOrders)
		orders.GET("/my-orders/:id", h.GetOrderDetail)
		orders.POST("/:id/cancel", h.CancelOrder)
		orders.POST("/:id/review", h.ReviewOrder)
	}

	r.POST("/api/payments/process", authRequired, middleware.RoleRequired(models.RoleCustomer), h.ProcessPayment)

	// ── Delivery routes ────────────────────────────────────────────
	delivery := r.Group("/api/delivery", authRequired, middleware.RoleRequired(models.RoleDeliveryPersonnel))
	{
		delivery.GET("/orders", h.GetMyDeliveries)
		delivery.GET("/orders/available", h.GetAvailableOrders)
		delivery.POST("/orders/:id/accept", h.AcceptDelivery)
	}

	// ── Shared order management ────────────────────────────────────
	manage := r.Group("/api/manage", authRequired,
		middleware.RoleRequired(models.RoleAdmin, models.RoleRestaurantOwner, models.RoleDeliveryPersonnel))
	{
		manage.PATCH("/orders/:id/status", h.UpdateOrderStatus)
	}
}
