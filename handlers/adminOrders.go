// File: handlers/adminOrders.go
package handlers

import (
	"errors"
	"net/http"

	"foodsavvy/services/order"
	"foodsavvy/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListOrdersHandler lists all orders, newest first.
func ListOrdersHandler(svc order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.List(c.Request.Context())
		if err != nil {
			getLogger(c).Error("Failed to list orders", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to list orders", err.Error())
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GetOrderHandler fetches one order by id.
func GetOrderHandler(svc order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.Get(c.Request.Context(), c.Param("id"))
		if errors.Is(err, order.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "order not found", c.Param("id"))
			return
		}
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to load order", err.Error())
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// UpdateOrderStatusHandler moves an order through the fulfillment states.
func UpdateOrderStatusHandler(svc order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}

		o, err := svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
		if errors.Is(err, order.ErrInvalidStatus) {
			utils.JSONError(c, http.StatusBadRequest, "invalid status", req.Status)
			return
		}
		if errors.Is(err, order.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "order not found", c.Param("id"))
			return
		}
		if err != nil {
			getLogger(c).Error("Failed to update order status", zap.String("orderId", c.Param("id")), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to update status", err.Error())
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// RefundOrderHandler refunds an order, partially when amountCents is given,
// otherwise the remaining refundable balance.
func RefundOrderHandler(svc order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			AmountCents int64 `json:"amountCents"`
		}
		// An empty body means a full refund.
		_ = c.ShouldBindJSON(&req)

		o, err := svc.Refund(c.Request.Context(), c.Param("id"), req.AmountCents)
		if errors.Is(err, order.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "order not found", c.Param("id"))
			return
		}
		if errors.Is(err, order.ErrNothingToRefund) {
			utils.JSONError(c, http.StatusConflict, "nothing to refund", c.Param("id"))
			return
		}
		if err != nil {
			getLogger(c).Error("Failed to refund order", zap.String("orderId", c.Param("id")), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to refund order", err.Error())
			return
		}
		c.JSON(http.StatusOK, o)
	}
}
