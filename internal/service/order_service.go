package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vibedit/vibedit-orders-service/internal/config"
	"github.com/vibedit/vibedit-orders-service/internal/errors"
	"github.com/vibedit/vibedit-orders-service/internal/logging"
	"github.com/vibedit/vibedit-orders-service/internal/metrics"
	"github.com/vibedit/vibedit-orders-service/internal/models"
	"github.com/vibedit/vibedit-orders-service/internal/pricing"
	"github.com/vibedit/vibedit-orders-service/internal/repository"
)

const (
	orderNumberPrefix     = "ORD"
	maxOrderNumberRetries = 3
)

// OrderEventPublisher publishes order lifecycle events.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
	PublishOrderStatusChanged(ctx context.Context, order *models.Order, previousStatus models.OrderStatus) error
	PublishOrderDeleted(ctx context.Context, order *models.Order) error
}

// OrderService handles order business logic.
type OrderService struct {
	orderRepo      repository.OrderRepository
	orderCache     repository.OrderCache
	eventPublisher OrderEventPublisher
	metrics        *metrics.Metrics
	features       config.FeatureFlags
	logger         *zap.Logger
	now            func() time.Time
}

// NewOrderService creates a new order service. orderCache and
// eventPublisher may be nil when the matching feature is disabled.
func NewOrderService(
	orderRepo repository.OrderRepository,
	orderCache repository.OrderCache,
	eventPublisher OrderEventPublisher,
	m *metrics.Metrics,
	features config.FeatureFlags,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		orderCache:     orderCache,
		eventPublisher: eventPublisher,
		metrics:        m,
		features:       features,
		logger:         logger.Named("order-service"),
		now:            time.Now,
	}
}

// Ping checks the order store.
func (s *OrderService) Ping(ctx context.Context) error {
	return s.orderRepo.Ping(ctx)
}

// PingCache checks the order cache. It is a no-op when caching is off.
func (s *OrderService) PingCache(ctx context.Context) error {
	if !s.cachingEnabled() {
		return nil
	}
	return s.orderCache.Ping(ctx)
}

// Quote prices an order without placing it. Unknown inputs fall back to
// the calculator defaults rather than failing.
func (s *OrderService) Quote(ctx context.Context, req *models.QuoteRequest) pricing.Breakdown {
	breakdown := pricing.Quote(req.ServiceType, req.DeliveryTimeLabel, req.WordCount, req.PromotionCode)

	s.metrics.QuoteServed(breakdown.ServiceType, breakdown.DeliveryFallback)
	logging.FromContext(ctx, s.logger).Debug("Quote served",
		zap.String("service_type", breakdown.ServiceType),
		zap.String("delivery_time_label", breakdown.DeliveryTimeLabel),
		zap.Int("word_count", breakdown.WordCount),
		zap.String("final_price", breakdown.FinalPrice.StringFixed(2)),
	)

	return breakdown
}

// CreateOrder validates and prices a new order for userID.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, req *models.CreateOrderRequest) (*models.Order, error) {
	logger := logging.FromContext(ctx, s.logger)
	logger.Info("Creating order",
		zap.String("user_id", userID),
		zap.String("service_type", req.ServiceType),
		zap.Int("word_count", req.WordCount),
	)

	if err := ValidateCreateOrderRequest(req); err != nil {
		return nil, err
	}

	variant, _ := models.ParseEnglishVariant(req.EnglishVariant)
	label := strings.ToLower(strings.TrimSpace(req.DeliveryTimeLabel))
	hours := pricing.LabelToHours(label)
	promotionCode := strings.ToUpper(strings.TrimSpace(req.PromotionCode))
	_, promotionApplied := pricing.DiscountPercent(promotionCode)

	now := s.now().UTC()
	order := &models.Order{
		ID:                 uuid.NewString(),
		UserID:             userID,
		OrderNumber:        orderNumberPrefix + strconv.FormatInt(now.UnixMilli(), 10),
		ProjectTitle:       strings.TrimSpace(req.ProjectTitle),
		ProjectDescription: req.ProjectDescription,
		ServiceType:        pricing.CanonicalServiceType(req.ServiceType),
		Status:             models.OrderStatusIncomplete,
		Price:              pricing.CalculatePrice(req.ServiceType, label, req.WordCount, promotionCode),
		DeliveryTime:       hours,
		DeliveryTimeLabel:  label,
		WordCount:          req.WordCount,
		EnglishVariant:     variant,
		PromotionCode:      promotionCode,
		FileURL:            req.FileURL,
		FileName:           req.FileName,
		CreatedAt:          now,
		UpdatedAt:          now,
		DueDate:            now.Add(time.Duration(hours) * time.Hour),
	}

	if err := s.persistNewOrder(ctx, order); err != nil {
		logger.Error("Failed to create order", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	if s.cachingEnabled() {
		if err := s.orderCache.Set(ctx, order); err != nil {
			logger.Warn("Failed to cache order", zap.String("order_id", order.ID), zap.Error(err))
		}
		s.invalidateUserOrders(ctx, order.UserID)
	}

	if s.eventsEnabled() {
		if err := s.eventPublisher.PublishOrderCreated(ctx, order); err != nil {
			logger.Error("Failed to publish order created event", zap.String("order_id", order.ID), zap.Error(err))
		}
	}

	s.metrics.OrderCreated(order.ServiceType, order.DeliveryTimeLabel, order.Price)
	if promotionApplied {
		s.metrics.PromotionRedeemed(promotionCode)
	}

	logger.Info("Order created successfully",
		zap.String("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("price", order.Price.StringFixed(2)),
	)

	return order, nil
}

// persistNewOrder stores order, suffixing the order number when two orders
// land on the same millisecond.
func (s *OrderService) persistNewOrder(ctx context.Context, order *models.Order) error {
	base := order.OrderNumber
	var err error
	for attempt := 0; attempt <= maxOrderNumberRetries; attempt++ {
		if attempt > 0 {
			order.OrderNumber = fmt.Sprintf("%s-%d", base, attempt)
		}
		err = s.orderRepo.Create(ctx, order)
		if err == nil || !errors.IsConflict(err) {
			return err
		}
	}
	return err
}

// GetOrder returns an order placed by userID.
func (s *OrderService) GetOrder(ctx context.Context, userID, id string) (*models.Order, error) {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.IsOwnedBy(userID) {
		return nil, errors.ErrForbidden
	}
	return order, nil
}

func (s *OrderService) loadOrder(ctx context.Context, id string) (*models.Order, error) {
	if s.cachingEnabled() {
		if order, err := s.orderCache.Get(ctx, id); err == nil && order != nil {
			s.logger.Debug("Order found in cache", zap.String("order_id", id))
			return order, nil
		}
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.ErrNotFound
	}

	if s.cachingEnabled() {
		if err := s.orderCache.Set(ctx, order); err != nil {
			s.logger.Warn("Failed to cache order", zap.String("order_id", id), zap.Error(err))
		}
	}

	return order, nil
}

// ListOrders returns one page of userID's orders.
func (s *OrderService) ListOrders(ctx context.Context, userID string, filter *models.OrderListFilter) (*models.OrderPage, error) {
	if filter == nil {
		filter = &models.OrderListFilter{}
	}
	if err := ValidateOrderListFilter(filter); err != nil {
		return nil, err
	}
	filter.UserID = userID

	cacheable := s.cachingEnabled() && filter.IsDefaultPage() && filter.Limit == defaultListLimit
	if cacheable {
		if page, err := s.orderCache.GetByUserID(ctx, userID); err == nil && page != nil {
			s.logger.Debug("User orders found in cache", zap.String("user_id", userID))
			return page, nil
		}
	}

	orders, total, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	page := &models.OrderPage{Orders: orders, Total: total}

	if cacheable {
		if err := s.orderCache.SetByUserID(ctx, userID, page); err != nil {
			s.logger.Warn("Failed to cache user orders", zap.String("user_id", userID), zap.Error(err))
		}
	}

	return page, nil
}

// ListAllOrders returns every order matching filter regardless of owner.
// It pages through the store and is meant for reporting.
func (s *OrderService) ListAllOrders(ctx context.Context, filter models.OrderListFilter) ([]*models.Order, error) {
	filter.UserID = ""
	filter.Limit = maxListLimit
	filter.Offset = 0

	var all []*models.Order
	for {
		orders, total, err := s.orderRepo.List(ctx, &filter)
		if err != nil {
			return nil, err
		}
		all = append(all, orders...)
		if len(orders) == 0 || len(all) >= total {
			return all, nil
		}
		filter.Offset += len(orders)
	}
}

// UpdateOrder changes the descriptive fields of an open order.
func (s *OrderService) UpdateOrder(ctx context.Context, userID, id string, req *models.UpdateOrderRequest) (*models.Order, error) {
	if err := ValidateUpdateOrderRequest(req); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.ErrNotFound
	}
	if !order.IsOwnedBy(userID) {
		return nil, errors.ErrForbidden
	}
	if order.Status.IsTerminal() {
		return nil, errors.NewValidationError("status",
			fmt.Sprintf("order cannot be edited once %s", order.Status))
	}

	req.Apply(order)
	order.UpdatedAt = s.now().UTC()

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.invalidateOrder(ctx, order)

	logging.FromContext(ctx, s.logger).Info("Order updated", zap.String("order_id", id))
	return order, nil
}

// DeleteOrder removes an order placed by userID.
func (s *OrderService) DeleteOrder(ctx context.Context, userID, id string) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return errors.ErrNotFound
	}
	if !order.IsOwnedBy(userID) {
		return errors.ErrForbidden
	}

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateOrder(ctx, order)

	if s.eventsEnabled() {
		if err := s.eventPublisher.PublishOrderDeleted(ctx, order); err != nil {
			s.logger.Error("Failed to publish order deleted event", zap.String("order_id", id), zap.Error(err))
		}
	}

	logging.FromContext(ctx, s.logger).Info("Order deleted", zap.String("order_id", id))
	return nil
}

// CompleteOrder marks userID's order as Complete.
func (s *OrderService) CompleteOrder(ctx context.Context, userID, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.ErrNotFound
	}
	if !order.IsOwnedBy(userID) {
		return nil, errors.ErrForbidden
	}

	return s.transition(ctx, order, &models.UpdateOrderStatusRequest{
		Status: models.OrderStatusComplete,
		Notes:  "Completed by customer",
	})
}

// UpdateOrderStatus moves an order to req.Status on behalf of the system.
// Asking for the status the order already has is a no-op, so redelivered
// payment events are harmless.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id string, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	logging.FromContext(ctx, s.logger).Info("Updating order status",
		zap.String("order_id", id),
		zap.String("new_status", string(req.Status)),
	)

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.ErrNotFound
	}
	if order.Status == req.Status {
		return order, nil
	}

	return s.transition(ctx, order, req)
}

func (s *OrderService) transition(ctx context.Context, order *models.Order, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	previousStatus := order.Status
	if !isValidStatusTransition(previousStatus, req.Status) {
		return nil, errors.NewValidationError("status", fmt.Sprintf(
			"invalid status transition from %s to %s",
			previousStatus,
			req.Status,
		))
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, order.ID, repository.StatusChange{
		From:      previousStatus,
		To:        req.Status,
		PaymentID: req.PaymentID,
		Note:      req.Notes,
	})
	if err != nil {
		return nil, err
	}

	s.invalidateOrder(ctx, updated)
	s.metrics.StatusTransition(string(previousStatus), string(updated.Status))

	if s.eventsEnabled() {
		if err := s.eventPublisher.PublishOrderStatusChanged(ctx, updated, previousStatus); err != nil {
			s.logger.Error("Failed to publish status change event", zap.String("order_id", updated.ID), zap.Error(err))
		}
	}

	return updated, nil
}

func (s *OrderService) invalidateOrder(ctx context.Context, order *models.Order) {
	if !s.cachingEnabled() {
		return
	}
	if err := s.orderCache.Delete(ctx, order.ID); err != nil {
		s.logger.Warn("Failed to evict order", zap.String("order_id", order.ID), zap.Error(err))
	}
	s.invalidateUserOrders(ctx, order.UserID)
}

func (s *OrderService) invalidateUserOrders(ctx context.Context, userID string) {
	if err := s.orderCache.InvalidateByUserID(ctx, userID); err != nil {
		s.logger.Warn("Failed to evict user orders", zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *OrderService) cachingEnabled() bool {
	return s.features.EnableOrderCaching && s.orderCache != nil
}

func (s *OrderService) eventsEnabled() bool {
	return s.features.EnableOrderEvents && s.eventPublisher != nil
}
