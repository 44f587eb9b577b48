package routes

import (
	"github.com/gin-gonic/gin"

	"velora_back_end/internal/handlers/admin"
	"velora_back_end/internal/handlers/chat"
	pa "velora_back_end/internal/handlers/payement"
	"velora_back_end/internal/handlers/pos"
	"velora_back_end/internal/handlers/product"
	"velora_back_end/internal/handlers/user"
	"velora_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// --- Auth ---
	auth := api.Group("/auth")
	auth.POST("/register", middleware.RegisterRateLimit(), user.Register)
	auth.POST("/login", middleware.LoginRateLimit(), user.Login)

	// --- Catalogue (public) ---
	api.GET("/products", product.GetProducts)
	api.GET("/products/:id", product.GetProductByID)
	api.GET("/products/:id/reviews", product.GetReviews)
	api.GET("/categories", product.GetCategories)
	api.GET("/search", product.SearchProducts)

	// --- Routes authentifiées ---
	authed := api.Group("")
	authed.Use(middleware.AuthRequired())
	{
		// Panier
		authed.GET("/cart", user.GetCart)
		authed.POST("/cart/add", user.AddToCart)
		authed.DELETE("/cart/items/:productId", user.RemoveFromCart)
		authed.DELETE("/cart", user.ClearCart)

		// Commandes
		authed.GET("/orders", user.GetMyOrders)
		authed.GET("/orders/:id", user.GetOrderByID)
		authed.POST("/orders/:id/confirm-delivery", user.ConfirmDelivery)
		authed.POST("/orders/:id/refund", pa.RequestRefund)

		// Notifications
		authed.GET("/notifications", user.GetMyNotifications)
		authed.POST("/notifications/:id/read", user.MarkNotificationRead)

		// Avis
		authed.POST("/products/:id/reviews", product.CreateReview)

		// Chat support
		authed.GET("/chat/ws", chat.ChatWebSocket)
		authed.GET("/chat/history", chat.GetChatHistory)
	}

	// --- Point de vente (équipe magasin) ---
	posGroup := api.Group("/pos")
	posGroup.Use(middleware.AuthRequired(), middleware.RequireSupport())
	{
		posGroup.POST("/sales", pos.CreateSale)
		posGroup.GET("/sales/:id/receipt-qr", pos.ReceiptQR)
	}

	// --- Administration ---
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthRequired(), middleware.RequireAdmin())
	{
		adminGroup.POST("/products", product.CreateProduct)
		adminGroup.PUT("/products/:id", product.UpdateProduct)
		adminGroup.DELETE("/products/:id", product.DeleteProduct)
		adminGroup.POST("/categories", product.CreateCategory)
		adminGroup.DELETE("/categories/:id", product.DeleteCategory)

		adminGroup.GET("/orders", admin.GetOrders)
		adminGroup.POST("/orders/:id/status", admin.UpdateOrderStatus)
		adminGroup.GET("/orders/:id/history", admin.GetOrderHistory)

		adminGroup.GET("/refunds", pa.GetRefunds)
		adminGroup.POST("/refunds/:id/process", pa.ProcessRefund)

		adminGroup.GET("/settings", admin.GetSettings)
		adminGroup.PUT("/settings", admin.UpdateSettings)

		adminGroup.POST("/auto-delivery/run", admin.RunAutoDelivery)
		adminGroup.GET("/auto-delivery/preview", admin.PreviewAutoDelivery)
	}
}
