package routes

import (
	"net/http"
	"time"

	"foodsavvy/config"
	"foodsavvy/handlers"
	"foodsavvy/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterMenuRoutes registers the public storefront endpoints. The paths
// are the storefront client's existing contract and must not move.
func RegisterMenuRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/menus/by-day", hb.GetPublicMenuHandler)
		api.GET("/suggestions", hb.GetSuggestionsHandler)
	}
}

// RegisterAvailabilityRoutes registers availability and delivery config
// endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/availability", hb.GetSlotAvailabilityHandler)
		api.GET("/delivery/config", hb.GetDeliveryConfigHandler)
	}
}

// RegisterCheckoutRoutes registers quoting, payment-intent creation and the
// post-payment poll endpoint.
func RegisterCheckoutRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/quote", hb.QuoteHandler)
		api.POST("/create-payment-intent", hb.CreatePaymentIntentHandler)
		api.GET("/orders/by-intent/:intentId", hb.GetOrderByIntentHandler)
	}
}

// RegisterCateringRoutes registers the public catering inquiry endpoint.
func RegisterCateringRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/catering/orders", hb.SubmitCateringHandler)
}

// RegisterWebhookRoute registers the Stripe webhook. It stays outside the
// rate limiter so retried deliveries are never dropped.
func RegisterWebhookRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/webhook", hb.StripeWebhookHandler)
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/admin/login", hb.AdminLoginHandler)

	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthAdminMiddleware())

		adminGroup.GET("/menus/:day", hb.GetAdminMenuHandler)
		adminGroup.POST("/menus/:day/items", hb.UpsertMenuItemHandler)
		adminGroup.DELETE("/menus/items/:itemId", hb.DeleteMenuItemHandler)
		adminGroup.PUT("/menus/items/:itemId/variants", hb.ReplaceVariantsHandler)
		adminGroup.PUT("/menus/items/:itemId/addons", hb.LinkAddOnsHandler)
		adminGroup.POST("/menus/copy-day", hb.CopyDayHandler)
		adminGroup.POST("/menus/start-week", hb.StartWeekHandler)

		adminGroup.GET("/categories", hb.ListCategoriesHandler)
		adminGroup.POST("/categories", hb.SaveCategoryHandler)
		adminGroup.DELETE("/categories/:id", hb.DeleteCategoryHandler)
		adminGroup.GET("/addons", hb.ListAddOnsHandler)
		adminGroup.POST("/addons", hb.SaveAddOnHandler)
		adminGroup.DELETE("/addons/:id", hb.DeleteAddOnHandler)

		adminGroup.GET("/orders", hb.ListOrdersHandler)
		adminGroup.GET("/orders/:id", hb.GetOrderHandler)
		adminGroup.PATCH("/orders/:id/status", hb.UpdateOrderStatusHandler)
		adminGroup.POST("/orders/:id/refund", hb.RefundOrderHandler)

		adminGroup.GET("/catering", hb.ListCateringHandler)
		adminGroup.GET("/catering/:id", hb.GetCateringHandler)

		adminGroup.PUT("/delivery/settings", hb.UpsertDeliverySettingsHandler)
		adminGroup.PUT("/delivery/slots", hb.ReplaceSlotTemplatesHandler)
		adminGroup.PUT("/delivery/blackouts", hb.ReplaceBlackoutsHandler)

		adminGroup.POST("/uploads", hb.UploadImageHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Food Savvy"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Locally stored menu images are served as static files.
	if config.AppConfig.StorageBackend != "cloudinary" {
		r.Static("/uploads", config.AppConfig.UploadDir)
	}

	RegisterWebhookRoute(r, hb)

	r.Use(middleware.RateLimitMiddleware())
	RegisterMenuRoutes(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterCheckoutRoutes(r, hb)
	RegisterCateringRoutes(r, hb)
	RegisterHealthRoute(r)
	RegisterAdminRoutes(r, hb)
}
