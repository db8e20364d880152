// File: handlers/webhook.go
package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"foodsavvy/config"
	"foodsavvy/services/order"
	"foodsavvy/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

const maxWebhookBodyBytes = 65536

// StripeWebhookHandler verifies the event signature and materializes orders
// from succeeded payments. Stripe retries on non-2xx, so transient failures
// return 500 and duplicates are absorbed by the intent-id idempotency check
// downstream.
func StripeWebhookHandler(svc order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "failed to read body", err.Error())
			return
		}

		event, err := webhook.ConstructEvent(body, c.GetHeader("Stripe-Signature"), config.AppConfig.StripeWebhookSecret)
		if err != nil {
			logger.Warn("Webhook signature verification failed", zap.Error(err))
			utils.JSONError(c, http.StatusBadRequest, "invalid signature", err.Error())
			return
		}

		switch event.Type {
		case "payment_intent.succeeded":
			var intent stripe.PaymentIntent
			if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
				utils.JSONError(c, http.StatusBadRequest, "malformed event payload", err.Error())
				return
			}
			if err := svc.HandlePaymentSucceeded(c.Request.Context(), intent.ID, intent.Amount, intent.Metadata); err != nil {
				logger.Error("Failed to process payment success",
					zap.String("paymentIntentId", intent.ID), zap.Error(err))
				utils.JSONError(c, http.StatusInternalServerError, "failed to process payment", err.Error())
				return
			}

		case "payment_intent.payment_failed":
			var intent stripe.PaymentIntent
			if err := json.Unmarshal(event.Data.Raw, &intent); err == nil {
				logger.Warn("Payment failed", zap.String("paymentIntentId", intent.ID))
			}

		default:
			logger.Debug("Ignoring webhook event", zap.String("type", string(event.Type)))
		}

		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
