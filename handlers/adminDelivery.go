// File: handlers/adminDelivery.go
package handlers

import (
	"net/http"
	"sort"

	deliveryRepo "foodsavvy/database/repository/delivery"
	"foodsavvy/models"
	"foodsavvy/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UpsertDeliverySettingsHandler saves the delivery settings singleton. Fee
// tiers are normalized to ascending distance order on the way in.
func UpsertDeliverySettingsHandler(repo deliveryRepo.DeliveryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var settings models.DeliverySettings
		if err := c.ShouldBindJSON(&settings); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		for _, tier := range settings.FeeTiers {
			if tier.ToMiles <= 0 || tier.FeeCents < 0 {
				utils.JSONError(c, http.StatusBadRequest, "invalid fee tier", "toMiles must be positive and feeCents non-negative")
				return
			}
		}
		sort.Slice(settings.FeeTiers, func(i, j int) bool {
			return settings.FeeTiers[i].ToMiles < settings.FeeTiers[j].ToMiles
		})
		settings.ID = models.DeliverySettingsID

		if err := repo.UpsertSettings(c.Request.Context(), &settings); err != nil {
			getLogger(c).Error("Failed to save delivery settings", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to save settings", err.Error())
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

// ReplaceSlotTemplatesHandler swaps the whole slot template set.
func ReplaceSlotTemplatesHandler(repo deliveryRepo.DeliveryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Slots []models.SlotTemplate `json:"slots"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		for i := range req.Slots {
			s := &req.Slots[i]
			if s.Label == "" || s.Capacity < 0 || s.StartMin < 0 || s.EndMin <= s.StartMin {
				utils.JSONError(c, http.StatusBadRequest, "invalid slot template", s.Label)
				return
			}
			if s.ID == "" {
				s.ID = uuid.New().String()
			}
		}

		if err := repo.ReplaceSlotTemplates(c.Request.Context(), req.Slots); err != nil {
			getLogger(c).Error("Failed to save slot templates", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to save slots", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"slots": req.Slots})
	}
}

// ReplaceBlackoutsHandler swaps the blackout date set. Dates are normalized
// to canonical keys.
func ReplaceBlackoutsHandler(repo deliveryRepo.DeliveryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Blackouts []models.BlackoutDate `json:"blackouts"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		for i := range req.Blackouts {
			b := &req.Blackouts[i]
			key, err := utils.NormalizeDateKey(b.Date)
			if err != nil {
				utils.JSONError(c, http.StatusBadRequest, "invalid blackout date", b.Date)
				return
			}
			b.Date = key
			if b.ID == "" {
				b.ID = uuid.New().String()
			}
		}

		if err := repo.ReplaceBlackouts(c.Request.Context(), req.Blackouts); err != nil {
			getLogger(c).Error("Failed to save blackout dates", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to save blackouts", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"blackouts": req.Blackouts})
	}
}
