// File: handlers/bundle.go
package handlers

import (
	deliveryRepo "foodsavvy/database/repository/delivery"
	"foodsavvy/services/availability"
	"foodsavvy/services/catering"
	"foodsavvy/services/checkout"
	"foodsavvy/services/menu"
	"foodsavvy/services/order"
	"foodsavvy/services/storage"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct routes can
// register from.
type HandlerBundle struct {
	// Public storefront
	GetPublicMenuHandler       gin.HandlerFunc
	GetSuggestionsHandler      gin.HandlerFunc
	GetSlotAvailabilityHandler gin.HandlerFunc
	GetDeliveryConfigHandler   gin.HandlerFunc

	// Checkout
	QuoteHandler               gin.HandlerFunc
	CreatePaymentIntentHandler gin.HandlerFunc
	GetOrderByIntentHandler    gin.HandlerFunc
	StripeWebhookHandler       gin.HandlerFunc

	// Catering
	SubmitCateringHandler gin.HandlerFunc
	ListCateringHandler   gin.HandlerFunc
	GetCateringHandler    gin.HandlerFunc

	// Admin
	AdminLoginHandler             gin.HandlerFunc
	GetAdminMenuHandler           gin.HandlerFunc
	UpsertMenuItemHandler         gin.HandlerFunc
	DeleteMenuItemHandler         gin.HandlerFunc
	ReplaceVariantsHandler        gin.HandlerFunc
	LinkAddOnsHandler             gin.HandlerFunc
	CopyDayHandler                gin.HandlerFunc
	StartWeekHandler              gin.HandlerFunc
	ListCategoriesHandler         gin.HandlerFunc
	SaveCategoryHandler           gin.HandlerFunc
	DeleteCategoryHandler         gin.HandlerFunc
	ListAddOnsHandler             gin.HandlerFunc
	SaveAddOnHandler              gin.HandlerFunc
	DeleteAddOnHandler            gin.HandlerFunc
	ListOrdersHandler             gin.HandlerFunc
	GetOrderHandler               gin.HandlerFunc
	UpdateOrderStatusHandler      gin.HandlerFunc
	RefundOrderHandler            gin.HandlerFunc
	UpsertDeliverySettingsHandler gin.HandlerFunc
	ReplaceSlotTemplatesHandler   gin.HandlerFunc
	ReplaceBlackoutsHandler       gin.HandlerFunc
	UploadImageHandler            gin.HandlerFunc
}

// NewHandlerBundle wires every handler to its service.
func NewHandlerBundle(
	menuSvc menu.Service,
	orderSvc order.Service,
	checkoutSvc checkout.Service,
	cateringSvc catering.Service,
	storageSvc storage.StorageService,
	engine availability.Engine,
	deliveries deliveryRepo.DeliveryRepository,
) *HandlerBundle {
	return &HandlerBundle{
		GetPublicMenuHandler:       GetPublicMenuHandler(menuSvc),
		GetSuggestionsHandler:      GetSuggestionsHandler(menuSvc),
		GetSlotAvailabilityHandler: GetSlotAvailabilityHandler(engine),
		GetDeliveryConfigHandler:   GetDeliveryConfigHandler(deliveries),

		QuoteHandler:               QuoteHandler(checkoutSvc),
		CreatePaymentIntentHandler: CreatePaymentIntentHandler(checkoutSvc),
		GetOrderByIntentHandler:    GetOrderByIntentHandler(orderSvc),
		StripeWebhookHandler:       StripeWebhookHandler(orderSvc),

		SubmitCateringHandler: SubmitCateringHandler(cateringSvc),
		ListCateringHandler:   ListCateringHandler(cateringSvc),
		GetCateringHandler:    GetCateringHandler(cateringSvc),

		AdminLoginHandler:             AdminLoginHandler(),
		GetAdminMenuHandler:           GetAdminMenuHandler(menuSvc),
		UpsertMenuItemHandler:         UpsertMenuItemHandler(menuSvc),
		DeleteMenuItemHandler:         DeleteMenuItemHandler(menuSvc),
		ReplaceVariantsHandler:        ReplaceVariantsHandler(menuSvc),
		LinkAddOnsHandler:             LinkAddOnsHandler(menuSvc),
		CopyDayHandler:                CopyDayHandler(menuSvc),
		StartWeekHandler:              StartWeekHandler(menuSvc),
		ListCategoriesHandler:         ListCategoriesHandler(menuSvc),
		SaveCategoryHandler:           SaveCategoryHandler(menuSvc),
		DeleteCategoryHandler:         DeleteCategoryHandler(menuSvc),
		ListAddOnsHandler:             ListAddOnsHandler(menuSvc),
		SaveAddOnHandler:              SaveAddOnHandler(menuSvc),
		DeleteAddOnHandler:            DeleteAddOnHandler(menuSvc),
		ListOrdersHandler:             ListOrdersHandler(orderSvc),
		GetOrderHandler:               GetOrderHandler(orderSvc),
		UpdateOrderStatusHandler:      UpdateOrderStatusHandler(orderSvc),
		RefundOrderHandler:            RefundOrderHandler(orderSvc),
		UpsertDeliverySettingsHandler: UpsertDeliverySettingsHandler(deliveries),
		ReplaceSlotTemplatesHandler:   ReplaceSlotTemplatesHandler(deliveries),
		ReplaceBlackoutsHandler:       ReplaceBlackoutsHandler(deliveries),
		UploadImageHandler:            UploadImageHandler(storageSvc),
	}
}
