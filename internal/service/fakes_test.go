package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/vibedit/vibedit-orders-service/internal/config"
	"github.com/vibedit/vibedit-orders-service/internal/errors"
	"github.com/vibedit/vibedit-orders-service/internal/metrics"
	"github.com/vibedit/vibedit-orders-service/internal/models"
	"github.com/vibedit/vibedit-orders-service/internal/repository"
)

type memoryRepo struct {
	mu            sync.Mutex
	orders        map[string]*models.Order
	numbers       map[string]bool
	createErrs    []error
	listCalls     int
	statusChanges []repository.StatusChange
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		orders:  make(map[string]*models.Order),
		numbers: make(map[string]bool),
	}
}

func (r *memoryRepo) Create(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		return err
	}
	if r.numbers[order.OrderNumber] {
		return errors.ErrConflict
	}
	r.numbers[order.OrderNumber] = true
	stored := *order
	r.orders[order.ID] = &stored
	return nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	out := *order
	return &out, nil
}

func (r *memoryRepo) List(ctx context.Context, filter *models.OrderListFilter) ([]*models.Order, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++

	var matched []*models.Order
	for _, order := range r.orders {
		if filter.UserID != "" && order.UserID != filter.UserID {
			continue
		}
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(order.ProjectTitle), strings.ToLower(filter.Search)) {
			continue
		}
		out := *order
		matched = append(matched, &out)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].OrderNumber > matched[j].OrderNumber })

	total := len(matched)
	if filter.Offset >= total {
		return []*models.Order{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if filter.Limit == 0 || end > total {
		end = total
	}
	return matched[filter.Offset:end], total, nil
}

func (r *memoryRepo) Update(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; !ok {
		return errors.ErrNotFound
	}
	stored := *order
	r.orders[order.ID] = &stored
	return nil
}

func (r *memoryRepo) UpdateStatus(ctx context.Context, id string, change repository.StatusChange) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	if order.Status != change.From {
		return nil, errors.ErrConflict
	}
	order.Status = change.To
	if change.PaymentID != "" {
		order.PaymentID = change.PaymentID
	}
	r.statusChanges = append(r.statusChanges, change)
	out := *order
	return &out, nil
}

func (r *memoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return errors.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *memoryRepo) Ping(ctx context.Context) error { return nil }

func (r *memoryRepo) put(order *models.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *order
	r.orders[order.ID] = &stored
	r.numbers[order.OrderNumber] = true
}

type memoryCache struct {
	orders      map[string]*models.Order
	pages       map[string]*models.OrderPage
	invalidated []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		orders: make(map[string]*models.Order),
		pages:  make(map[string]*models.OrderPage),
	}
}

func (c *memoryCache) Get(ctx context.Context, id string) (*models.Order, error) {
	return c.orders[id], nil
}

func (c *memoryCache) Set(ctx context.Context, order *models.Order) error {
	out := *order
	c.orders[order.ID] = &out
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, id string) error {
	delete(c.orders, id)
	return nil
}

func (c *memoryCache) GetByUserID(ctx context.Context, userID string) (*models.OrderPage, error) {
	return c.pages[userID], nil
}

func (c *memoryCache) SetByUserID(ctx context.Context, userID string, page *models.OrderPage) error {
	c.pages[userID] = page
	return nil
}

func (c *memoryCache) InvalidateByUserID(ctx context.Context, userID string) error {
	delete(c.pages, userID)
	c.invalidated = append(c.invalidated, userID)
	return nil
}

func (c *memoryCache) Ping(ctx context.Context) error { return nil }

type publishedEvent struct {
	kind           string
	orderID        string
	status         models.OrderStatus
	previousStatus models.OrderStatus
}

type recordingPublisher struct {
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	p.events = append(p.events, publishedEvent{kind: "created", orderID: order.ID, status: order.Status})
	return p.err
}

func (p *recordingPublisher) PublishOrderStatusChanged(ctx context.Context, order *models.Order, previousStatus models.OrderStatus) error {
	p.events = append(p.events, publishedEvent{
		kind:           "status_changed",
		orderID:        order.ID,
		status:         order.Status,
		previousStatus: previousStatus,
	})
	return p.err
}

func (p *recordingPublisher) PublishOrderDeleted(ctx context.Context, order *models.Order) error {
	p.events = append(p.events, publishedEvent{kind: "deleted", orderID: order.ID, status: order.Status})
	return p.err
}

type testEnv struct {
	svc       *OrderService
	repo      *memoryRepo
	cache     *memoryCache
	publisher *recordingPublisher
}

var fixedNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestEnv(t *testing.T, features config.FeatureFlags) *testEnv {
	t.Helper()

	env := &testEnv{
		repo:      newMemoryRepo(),
		cache:     newMemoryCache(),
		publisher: &recordingPublisher{},
	}
	env.svc = NewOrderService(
		env.repo,
		env.cache,
		env.publisher,
		metrics.New(prometheus.NewRegistry()),
		features,
		zap.NewNop(),
	)
	env.svc.now = func() time.Time { return fixedNow }
	return env
}

func allFeatures() config.FeatureFlags {
	return config.FeatureFlags{EnableOrderCaching: true, EnableOrderEvents: true}
}
