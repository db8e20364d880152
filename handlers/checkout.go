// File: handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"foodsavvy/models"
	"foodsavvy/services/checkout"
	"foodsavvy/services/order"
	"foodsavvy/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type quoteRequest struct {
	ItemsCents int64    `json:"itemsCents" binding:"required"`
	Type       string   `json:"type" binding:"required"`
	DestLat    *float64 `json:"destLat"`
	DestLng    *float64 `json:"destLng"`
}

// QuoteHandler prices a checkout: items, tiered delivery fee, sales tax.
func QuoteHandler(svc checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req quoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}

		if req.Type == models.FulfillmentPickup {
			c.JSON(http.StatusOK, svc.QuotePickup(c.Request.Context(), req.ItemsCents))
			return
		}

		if req.DestLat == nil || req.DestLng == nil {
			utils.JSONError(c, http.StatusBadRequest, "missing destination", "destLat and destLng are required for delivery quotes")
			return
		}
		quote, err := svc.QuoteDelivery(c.Request.Context(), req.ItemsCents, *req.DestLat, *req.DestLng)
		if errors.Is(err, checkout.ErrOutOfRange) {
			utils.JSONError(c, http.StatusUnprocessableEntity, "out of delivery range", err.Error())
			return
		}
		if err != nil {
			getLogger(c).Error("Failed to quote delivery", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to build quote", err.Error())
			return
		}
		c.JSON(http.StatusOK, quote)
	}
}

type paymentIntentRequest struct {
	AmountCents int64                  `json:"amountCents" binding:"required"`
	Name        string                 `json:"name" binding:"required"`
	Email       string                 `json:"email" binding:"required"`
	Type        string                 `json:"type" binding:"required"`
	Address     string                 `json:"address"`
	Phone       string                 `json:"phone"`
	Schedule    map[string]string      `json:"schedule"`
	Items       []models.MetadataItem  `json:"items" binding:"required"`
	AddOns      []models.MetadataAddOn `json:"addOns"`
}

// CreatePaymentIntentHandler re-validates capacity and hands back the client
// secret the payment form needs.
func CreatePaymentIntentHandler(svc checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req paymentIntentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}

		result, err := svc.CreatePaymentIntent(c.Request.Context(), checkout.PaymentIntentRequest{
			AmountCents: req.AmountCents,
			Name:        req.Name,
			Email:       req.Email,
			Type:        req.Type,
			Metadata: models.CheckoutMetadata{
				Type:     req.Type,
				Name:     req.Name,
				Email:    req.Email,
				Address:  req.Address,
				Phone:    req.Phone,
				Schedule: req.Schedule,
				Items:    req.Items,
				AddOns:   req.AddOns,
			},
		})
		if err != nil {
			var soldOut *checkout.SoldOutError
			var slotFull *checkout.SlotUnavailableError
			switch {
			case errors.As(err, &soldOut):
				c.JSON(http.StatusConflict, gin.H{
					"error":      "sold_out",
					"menuItemId": soldOut.MenuItemID,
					"date":       soldOut.DateKey,
					"remaining":  soldOut.Remaining,
				})
			case errors.As(err, &slotFull):
				c.JSON(http.StatusConflict, gin.H{
					"error": "slot_unavailable",
					"date":  slotFull.DateKey,
					"slot":  slotFull.Slot,
				})
			case errors.Is(err, checkout.ErrScheduleIncomplete):
				utils.JSONError(c, http.StatusBadRequest, "incomplete schedule", err.Error())
			default:
				getLogger(c).Error("Failed to create payment intent", zap.Error(err))
				utils.JSONError(c, http.StatusInternalServerError, "failed to create payment intent", err.Error())
			}
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// GetOrderByIntentHandler is the post-payment poll target. It returns 404
// with a pending marker until the webhook has materialized the order.
func GetOrderByIntentHandler(svc order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		intentID := c.Param("intentId")
		o, err := svc.GetByPaymentIntent(c.Request.Context(), intentID)
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "pending"})
			return
		}
		if err != nil {
			getLogger(c).Error("Failed to look up order by intent", zap.String("intentId", intentID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to look up order", err.Error())
			return
		}
		c.JSON(http.StatusOK, o)
	}
}
