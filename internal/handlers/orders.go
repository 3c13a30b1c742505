package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vibedit/vibedit-orders-service/internal/errors"
	"github.com/vibedit/vibedit-orders-service/internal/models"
)

// CreateOrder handles POST /api/v1/orders
func (h *Handlers) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewOrderView(order))
}

// GetOrder handles GET /api/v1/orders/:id
func (h *Handlers) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewOrderView(order))
}

// ListOrders handles GET /api/v1/orders
func (h *Handlers) ListOrders(c *gin.Context) {
	filter := &models.OrderListFilter{Search: c.Query("search")}

	if status := c.Query("status"); status != "" {
		s, ok := models.ParseOrderStatus(status)
		if !ok {
			handleError(c, errors.NewValidationError("status", "unknown order status"))
			return
		}
		filter.Status = &s
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			handleError(c, errors.NewValidationError("limit", "limit must be a number"))
			return
		}
		filter.Limit = limit
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			handleError(c, errors.NewValidationError("offset", "offset must be a number"))
			return
		}
		filter.Offset = offset
	}

	page, err := h.orderService.ListOrders(c.Request.Context(), currentUserID(c), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": models.NewOrderViews(page.Orders),
		"total":  page.Total,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

// UpdateOrder handles PATCH /api/v1/orders/:id
func (h *Handlers) UpdateOrder(c *gin.Context) {
	var req models.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), currentUserID(c), c.Param("id"), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewOrderView(order))
}

// DeleteOrder handles DELETE /api/v1/orders/:id
func (h *Handlers) DeleteOrder(c *gin.Context) {
	if err := h.orderService.DeleteOrder(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CompleteOrder handles POST /api/v1/orders/:id/complete
func (h *Handlers) CompleteOrder(c *gin.Context) {
	order, err := h.orderService.CompleteOrder(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewOrderView(order))
}
