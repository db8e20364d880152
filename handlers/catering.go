// File: handlers/catering.go
package handlers

import (
	"errors"
	"net/http"

	"foodsavvy/services/catering"
	"foodsavvy/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubmitCateringHandler takes a public catering inquiry.
func SubmitCateringHandler(svc catering.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var inq catering.Inquiry
		if err := c.ShouldBindJSON(&inq); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}

		created, err := svc.Submit(c.Request.Context(), inq)
		if err != nil {
			getLogger(c).Warn("Catering inquiry rejected", zap.Error(err))
			utils.JSONError(c, http.StatusBadRequest, "invalid inquiry", err.Error())
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// ListCateringHandler lists inquiries for admin review.
func ListCateringHandler(svc catering.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.List(c.Request.Context())
		if err != nil {
			getLogger(c).Error("Failed to list catering orders", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to list catering orders", err.Error())
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GetCateringHandler fetches one inquiry.
func GetCateringHandler(svc catering.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.Get(c.Request.Context(), c.Param("id"))
		if errors.Is(err, catering.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "catering order not found", c.Param("id"))
			return
		}
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to load catering order", err.Error())
			return
		}
		c.JSON(http.StatusOK, o)
	}
}
