package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vibedit/vibedit-orders-service/internal/config"
	"github.com/vibedit/vibedit-orders-service/internal/errors"
	"github.com/vibedit/vibedit-orders-service/internal/models"
	"github.com/vibedit/vibedit-orders-service/internal/pricing"
)

// OrderService is the order workflow the HTTP layer drives.
type OrderService interface {
	Quote(ctx context.Context, req *models.QuoteRequest) pricing.Breakdown
	CreateOrder(ctx context.Context, userID string, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, userID, id string) (*models.Order, error)
	ListOrders(ctx context.Context, userID string, filter *models.OrderListFilter) (*models.OrderPage, error)
	UpdateOrder(ctx context.Context, userID, id string, req *models.UpdateOrderRequest) (*models.Order, error)
	DeleteOrder(ctx context.Context, userID, id string) error
	CompleteOrder(ctx context.Context, userID, id string) (*models.Order, error)
}

// ReadinessCheck is one dependency probed by GET /ready.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Handlers holds all HTTP handlers for the orders service.
type Handlers struct {
	orderService OrderService
	checks       []ReadinessCheck
	config       *config.Config
	version      string
	logger       *zap.Logger
}

// NewHandlers creates a new handlers instance.
func NewHandlers(
	orderService OrderService,
	checks []ReadinessCheck,
	cfg *config.Config,
	version string,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		orderService: orderService,
		checks:       checks,
		config:       cfg,
		version:      version,
		logger:       logger.Named("handlers"),
	}
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	if validationErr, ok := errors.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   validationErr.Message,
			"details": validationErr.Details,
		})
		return
	}

	switch {
	case errors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.IsForbidden(err):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": "order was modified concurrently, retry"})
	case errors.IsUnauthenticated(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
