package routes

import (
	"household-eats-api/handlers"
	"household-eats-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Device auth
		public.POST("/auth", handlers.Authenticate)
		public.GET("/auth", handlers.CheckAuth)

		// Menu, reviews and stats are readable by everyone
		public.GET("/dishes", handlers.ListDishes)
		public.GET("/reviews", handlers.GetReviews)
		public.GET("/stats", handlers.GetStats)
		public.GET("/config", handlers.GetSettings)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)

		// Admin session
		public.POST("/admin/login", handlers.AdminLogin)
	}

	// ── Identified household routes ────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.Identity())
	{
		// The shared cart: one pool for the whole household
		cart := auth.Group("/cart")
		cart.Use(middleware.RequireCapability(middleware.OpUseCart))
		{
			cart.GET("", handlers.GetCart)
			cart.POST("", handlers.AddToCart)
			cart.PUT("", handlers.SetCartQuantity)
			cart.DELETE("", handlers.RemoveFromCart)
		}

		// Orders
		auth.GET("/orders", handlers.GetOrders)
		auth.POST("/orders", middleware.RequireCapability(middleware.OpPlaceOrder), handlers.CreateOrder)
		// Transition target decides the capability; checked in the handler
		auth.PUT("/orders/:id/status", handlers.TransitionOrder)
		auth.DELETE("/orders/:id", middleware.RequireCapability(middleware.OpDeleteOrder), handlers.DeleteOrder)

		// Reviews
		auth.POST("/reviews", middleware.RequireCapability(middleware.OpSubmitReview), handlers.SubmitReview)
		auth.DELETE("/reviews/:id", middleware.RequireCapability(middleware.OpDeleteReview), handlers.DeleteReview)

		// Menu management (fulfiller only)
		menu := auth.Group("/dishes")
		menu.Use(middleware.RequireCapability(middleware.OpManageMenu))
		{
			menu.POST("", handlers.CreateDish)
			menu.PUT("/:id", handlers.UpdateDish)
			menu.DELETE("/:id", handlers.DeleteDish)
		}
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AdminRequired())
	{
		admin.PUT("/password", handlers.AdminChangePassword)
		admin.GET("/users", handlers.AdminGetUsers)
		admin.PUT("/users/:id", handlers.AdminUpdateUser)
		admin.DELETE("/users/:id", handlers.AdminDeleteUser)
		admin.PUT("/config", handlers.AdminUpdateSetting)
	}
}
