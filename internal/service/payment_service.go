package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/vibedit/vibedit-orders-service/internal/errors"
	"github.com/vibedit/vibedit-orders-service/internal/models"
)

// OrderStatusUpdater applies system status changes to orders.
type OrderStatusUpdater interface {
	UpdateOrderStatus(ctx context.Context, id string, req *models.UpdateOrderStatusRequest) (*models.Order, error)
}

// PaymentService applies payment outcomes reported by the payment
// provider to the orders they paid for.
type PaymentService struct {
	orders OrderStatusUpdater
	logger *zap.Logger
}

// NewPaymentService creates a new payment service.
func NewPaymentService(orders OrderStatusUpdater, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		orders: orders,
		logger: logger.Named("payment-service"),
	}
}

// PaymentCompleted marks a paid order as Pending, waiting for an editor.
func (s *PaymentService) PaymentCompleted(ctx context.Context, orderID, paymentID string) (*models.Order, error) {
	if err := requireOrderID(orderID); err != nil {
		return nil, err
	}

	s.logger.Info("Payment completed",
		zap.String("order_id", orderID),
		zap.String("payment_id", paymentID),
	)

	return s.orders.UpdateOrderStatus(ctx, orderID, &models.UpdateOrderStatusRequest{
		Status:    models.OrderStatusPending,
		PaymentID: paymentID,
		Notes:     "Payment completed",
	})
}

// PaymentFailed records a failed payment. The order stays Incomplete so
// the customer can pay again.
func (s *PaymentService) PaymentFailed(ctx context.Context, orderID, paymentID, reason string) error {
	if err := requireOrderID(orderID); err != nil {
		return err
	}

	s.logger.Warn("Payment failed",
		zap.String("order_id", orderID),
		zap.String("payment_id", paymentID),
		zap.String("reason", reason),
	)
	return nil
}

// PaymentRefunded cancels a refunded order.
func (s *PaymentService) PaymentRefunded(ctx context.Context, orderID, paymentID, reason string) (*models.Order, error) {
	if err := requireOrderID(orderID); err != nil {
		return nil, err
	}

	s.logger.Info("Payment refunded",
		zap.String("order_id", orderID),
		zap.String("payment_id", paymentID),
	)

	notes := "Payment refunded"
	if reason != "" {
		notes += ": " + reason
	}

	return s.orders.UpdateOrderStatus(ctx, orderID, &models.UpdateOrderStatusRequest{
		Status:    models.OrderStatusCancelled,
		PaymentID: paymentID,
		Notes:     notes,
	})
}

func requireOrderID(orderID string) error {
	if strings.TrimSpace(orderID) == "" {
		return errors.NewValidationError("order_id", "order id is required")
	}
	return nil
}
