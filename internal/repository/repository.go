package repository

import (
	"context"

	"github.com/vibedit/vibedit-orders-service/internal/models"
)

// Ensure implementations satisfy their interfaces
var (
	_ OrderRepository = (*PostgresOrderRepository)(nil)
	_ OrderCache      = (*RedisOrderCache)(nil)
)

// OrderRepository persists orders.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, filter *models.OrderListFilter) ([]*models.Order, int, error)
	Update(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id string, change StatusChange) (*models.Order, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// StatusChange moves an order from one status to another. From guards
// against concurrent transitions: the update only applies while the stored
// status still equals From.
type StatusChange struct {
	From      models.OrderStatus
	To        models.OrderStatus
	PaymentID string
	Note      string
}

// OrderCache defines caching operations for orders.
type OrderCache interface {
	Get(ctx context.Context, id string) (*models.Order, error)
	Set(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id string) error
	GetByUserID(ctx context.Context, userID string) (*models.OrderPage, error)
	SetByUserID(ctx context.Context, userID string, page *models.OrderPage) error
	InvalidateByUserID(ctx context.Context, userID string) error
	Ping(ctx context.Context) error
}
