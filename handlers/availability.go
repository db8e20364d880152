// File: handlers/availability.go
package handlers

import (
	"errors"
	"net/http"

	deliveryRepo "foodsavvy/database/repository/delivery"
	"foodsavvy/services/availability"
	"foodsavvy/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetSlotAvailabilityHandler reports per-slot seat remainders for a date.
// A blacked-out date comes back with an empty slot list.
func GetSlotAvailabilityHandler(engine availability.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Query("date")
		if date == "" {
			utils.JSONError(c, http.StatusBadRequest, "missing date", "query parameter 'date' is required")
			return
		}

		day, err := engine.SlotRemaining(c.Request.Context(), date)
		if errors.Is(err, availability.ErrSettingsNotConfigured) {
			utils.JSONError(c, http.StatusConflict, "delivery not configured", err.Error())
			return
		}
		if err != nil {
			getLogger(c).Error("Failed to compute slot availability", zap.String("date", date), zap.Error(err))
			utils.JSONError(c, http.StatusBadRequest, "failed to compute availability", err.Error())
			return
		}
		c.JSON(http.StatusOK, day)
	}
}

// GetDeliveryConfigHandler exposes the settings, slot templates and blackout
// dates the checkout UI needs.
func GetDeliveryConfigHandler(repo deliveryRepo.DeliveryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		settings, err := repo.GetSettings(ctx)
		if err != nil {
			getLogger(c).Error("Failed to load delivery settings", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to load delivery config", err.Error())
			return
		}
		slots, err := repo.ListSlotTemplates(ctx, true)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to load delivery config", err.Error())
			return
		}
		blackouts, err := repo.ListBlackouts(ctx)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to load delivery config", err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"settings":  settings,
			"slots":     slots,
			"blackouts": blackouts,
		})
	}
}
