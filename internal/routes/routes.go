package routes

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"luxe_back_end/internal/handlers"
	"luxe_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handler) {
	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")

	// Public
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.GET("/products", h.GetProducts)
	api.GET("/products/:id", h.GetProductByID)
	api.GET("/products/:id/reviews", h.GetReviews)
	api.GET("/categories", h.GetCategories)

	// Authentifié
	auth := api.Group("")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/cart", h.GetCart)
		auth.POST("/cart/add", h.AddToCart)
		auth.PUT("/cart/:productId", h.UpdateCartItem)
		auth.DELETE("/cart/:productId", h.RemoveFromCart)
		auth.DELETE("/cart", h.ClearCart)

		auth.GET("/wishlist", h.GetWishlist)
		auth.POST("/wishlist/toggle", h.ToggleWishlist)

		auth.POST("/checkout", h.Checkout)
		auth.GET("/orders", h.GetMyOrders)
		auth.GET("/orders/:id", h.GetOrderByID)
		auth.GET("/orders/:id/upi-qr", h.GetOrderUPIQR)

		auth.POST("/products/:id/reviews", h.CreateReview)
	}

	// Admin
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.RequireAdmin)
	{
		admin.GET("/analytics", h.GetAnalytics)
		admin.PUT("/orders/:userId/:orderId/status", h.UpdateOrderStatus)
	}
}
