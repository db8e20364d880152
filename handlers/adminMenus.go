// File: handlers/adminMenus.go
package handlers

import (
	"errors"
	"net/http"

	"foodsavvy/models"
	"foodsavvy/services/menu"
	"foodsavvy/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetAdminMenuHandler returns a weekday's menu with archived items included.
// ?weekOf pins a concrete week; empty means the recurring template.
func GetAdminMenuHandler(svc menu.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		day, ok := parseWeekday(c.Param("day"))
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, "invalid day", "day must be 0 (Sunday) through 6 (Saturday)")
			return
		}
		m, items, err := svc.AdminMenuByDay(c.Request.Context(), day, c.Query("weekOf"))
		if err != nil {
			getLogger(c).Error("Failed to load admin menu", zap.Int("day", day), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to load menu", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"menu": m, "items": items})
	}
}

// UpsertMenuItemHandler creates or updates an item on a weekday's menu.
func UpsertMenuItemHandler(svc menu.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		day, ok := parseWeekday(c.Param("day"))
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, "invalid day", "day must be 0 (Sunday) through 6 (Saturday)")
			return
		}
		var item models.MenuItem
		if err := c.ShouldBindJSON(&item); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		if item.Name == "" {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "item name is required")
			return
		}

		saved, err := svc.UpsertItem(c.Request.Context(), day, c.Query("weekOf"), &item)
		if errors.Is(err, menu.ErrItemNotFound) {
			utils.JSONError(c, http.StatusNotFound, "menu item not found", item.ID)
			return
		}
		if err != nil {
			getLogger(c).Error("Failed to save menu item", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to save item", err.Error())
			return
		}
		c.JSON(http.StatusOK, saved)
	}
}

// DeleteMenuItemHandler removes an item, archiving instead when order
// history references it.
func DeleteMenuItemHandler(svc menu.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("itemId")
		err := svc.DeleteItem(c.Request.Context(), id)
		if errors.Is(err, menu.ErrItemNotFound) {
			utils.JSONError(c, http.StatusNotFound, "menu item not found", id)
			return
		}
		if err != nil {
			getLogger(c).Error("Failed to delete menu item", zap.String("itemId", id), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to delete item", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	}
}

// ReplaceVariantsHandler swaps an item's variant set wholesale.
func ReplaceVariantsHandler(svc menu.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Variants []models.Variant `json:"variants"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		variants, err := svc.ReplaceVariants(c.Request.Context(), c.Param("itemId"), req.Variants)
		if errors.Is(err, menu.ErrItemNotFound) {
			utils.JSONError(c, http.StatusNotFound, "menu item not found", c.Param("itemId"))
			return
		}
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to save variants", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"variants": variants})
	}
}

// LinkAddOnsHandler sets the add-ons attached to an item.
func LinkAddOnsHandler(svc menu.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			AddOnIDs []string `json:"addOnIds"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		err := svc.LinkAddOns(c.Request.Context(), c.Param("itemId"), req.AddOnIDs)
		if errors.Is(err, menu.ErrItemNotFound) {
			utils.JSONError(c, http.StatusNotFound, "menu item not found", c.Param("itemId"))
			return
		}
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to link add-ons", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"addOnIds": req.AddOnIDs})
	}
}

// CopyDayHandler clones one weekday's items onto another.
func CopyDayHandler(svc menu.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			FromDay int    `json:"fromDay"`
			ToDay   int    `json:"toDay"`
			WeekOf  string `json:"weekOf"`
			Replace bool   `json:"replace"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		if req.FromDay < 0 || req.FromDay > 6 || req.ToDay < 0 || req.ToDay > 6 {
			utils.JSONError(c, http.StatusBadRequest, "invalid day", "days must be 0 through 6")
			return
		}

		copied, err := svc.CopyDay(c.Request.Context(), req.FromDay, req.ToDay, req.WeekOf, req.Replace)
		if errors.Is(err, menu.ErrMenuNotFound) {
			utils.JSONError(c, http.StatusNotFound, "source menu not found", "")
			return
		}
		if err != nil {
			getLogger(c).Error("Failed to copy day", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to copy day", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"copied": copied})
	}
}

// StartWeekHandler clones every weekday template into the week containing
// the given date.
func StartWeekHandler(svc menu.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Date string `json:"date" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		cloned, err := svc.StartWeek(c.Request.Context(), req.Date)
		if err != nil {
			getLogger(c).Error("Failed to start week", zap.String("date", req.Date), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to start week", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"itemsCloned": cloned})
	}
}

// Category and add-on catalog CRUD.

func ListCategoriesHandler(svc menu.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := svc.ListCategories(c.Request.Context())
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to list categories", err.Error())
			return
		}
		c.JSON(http.StatusOK, cats)
	}
}

func SaveCategoryHandler(svc menu.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cat models.Category
		if err := c.ShouldBindJSON(&cat); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		saved, err := svc.SaveCategory(c.Request.Context(), &cat)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "failed to save category", err.Error())
			return
		}
		c.JSON(http.StatusOK, saved)
	}
}

func DeleteCategoryHandler(svc menu.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to delete category", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
	}
}

func ListAddOnsHandler(svc menu.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		addOns, err := svc.ListAddOns(c.Request.Context())
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to list add-ons", err.Error())
			return
		}
		c.JSON(http.StatusOK, addOns)
	}
}

func SaveAddOnHandler(svc menu.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var addOn models.AddOn
		if err := c.ShouldBindJSON(&addOn); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		saved, err := svc.SaveAddOn(c.Request.Context(), &addOn)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "failed to save add-on", err.Error())
			return
		}
		c.JSON(http.StatusOK, saved)
	}
}

func DeleteAddOnHandler(svc menu.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteAddOn(c.Request.Context(), c.Param("id")); err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to delete add-on", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
	}
}
