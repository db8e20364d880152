// File: handlers/menu.go
package handlers

import (
	"net/http"
	"strconv"

	"foodsavvy/services/menu"
	"foodsavvy/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// parseWeekday accepts 0..6 (0=Sunday).
func parseWeekday(s string) (int, bool) {
	day, err := strconv.Atoi(s)
	if err != nil || day < 0 || day > 6 {
		return 0, false
	}
	return day, true
}

// GetPublicMenuHandler serves the sellable menu for ?weekday=0..6. An
// optional ?date=YYYY-MM-DD pins a service date and attaches remaining
// capacity.
func GetPublicMenuHandler(svc menu.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		day, ok := parseWeekday(c.Query("weekday"))
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, "invalid weekday", "weekday must be 0 (Sunday) through 6 (Saturday)")
			return
		}

		items, err := svc.PublicMenuByDay(c.Request.Context(), day, c.Query("date"))
		if err != nil {
			getLogger(c).Error("Failed to load public menu", zap.Int("day", day), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to load menu", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"day": day, "items": items})
	}
}

// GetSuggestionsHandler serves the add-ons linked to ?itemId= as a flat
// array, mirroring what the storefront's suggestion strip expects.
func GetSuggestionsHandler(svc menu.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID := c.Query("itemId")
		if itemID == "" {
			utils.JSONError(c, http.StatusBadRequest, "missing itemId", "itemId query parameter is required")
			return
		}
		addOns, err := svc.Suggestions(c.Request.Context(), itemID)
		if err != nil {
			getLogger(c).Error("Failed to load suggestions", zap.String("itemId", itemID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to load suggestions", err.Error())
			return
		}
		c.JSON(http.StatusOK, addOns)
	}
}
