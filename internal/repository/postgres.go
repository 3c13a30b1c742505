package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/vibedit/vibedit-orders-service/internal/config"
	"github.com/vibedit/vibedit-orders-service/internal/errors"
	"github.com/vibedit/vibedit-orders-service/internal/models"
)

const orderColumns = `
	id, user_id, order_number, project_title, project_description,
	service_type, status, price, delivery_time_hours, delivery_time_label,
	word_count, english_variant, promotion_code, payment_id,
	file_url, file_name, created_at, updated_at, due_date`

// OpenPostgres connects to PostgreSQL, retrying with exponential backoff
// until cfg.ConnectTimeout elapses.
func OpenPostgres(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*sql.DB, error) {
	const operation = "repository.OpenPostgres"

	var db *sql.DB

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = cfg.ConnectTimeout
	retryPolicy.MaxInterval = 15 * time.Second

	logger.Info("Connecting to PostgreSQL",
		zap.String("host", cfg.Host),
		zap.String("name", cfg.Name))

	err := backoff.RetryNotify(
		func() error {
			conn, err := sql.Open("postgres", cfg.ConnectionString())
			if err != nil {
				return backoff.Permanent(fmt.Errorf("open: %w", err))
			}
			if err := conn.PingContext(ctx); err != nil {
				conn.Close()
				return fmt.Errorf("ping: %w", err)
			}
			db = conn
			return nil
		},
		backoff.WithContext(retryPolicy, ctx),
		func(err error, next time.Duration) {
			logger.Warn("PostgreSQL connection failed, retrying",
				zap.Error(err),
				zap.Duration("next_attempt_in", next))
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	logger.Info("Database connected")
	return db, nil
}

// PostgresOrderRepository implements OrderRepository using PostgreSQL.
type PostgresOrderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresOrderRepository creates a new PostgreSQL order repository.
func NewPostgresOrderRepository(db *sql.DB, logger *zap.Logger) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		db:     db,
		logger: logger.Named("order-repository"),
	}
}

// Ping checks database connectivity.
func (r *PostgresOrderRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Create inserts a new order.
func (r *PostgresOrderRepository) Create(ctx context.Context, order *models.Order) error {
	r.logger.Debug("Creating order", zap.String("order_id", order.ID), zap.String("user_id", order.UserID))

	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := r.db.ExecContext(ctx, query,
		order.ID,
		order.UserID,
		order.OrderNumber,
		order.ProjectTitle,
		order.ProjectDescription,
		order.ServiceType,
		order.Status,
		order.Price,
		order.DeliveryTime,
		order.DeliveryTimeLabel,
		order.WordCount,
		order.EnglishVariant,
		nullString(order.PromotionCode),
		nullString(order.PaymentID),
		nullString(order.FileURL),
		nullString(order.FileName),
		order.CreatedAt,
		order.UpdatedAt,
		order.DueDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.ErrConflict
		}
		r.logger.Error("Failed to create order", zap.String("user_id", order.UserID), zap.Error(err))
		return fmt.Errorf("repository.Create: %w", err)
	}

	r.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("price", order.Price.StringFixed(2)))

	return nil
}

// GetByID retrieves a live order by its identifier.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	r.logger.Debug("Fetching order by ID", zap.String("order_id", id))

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND deleted_at IS NULL`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to fetch order", zap.String("order_id", id), zap.Error(err))
		return nil, fmt.Errorf("repository.GetByID: %w", err)
	}

	return order, nil
}

// List returns orders matching filter, newest first, and the total number
// of matches ignoring Limit and Offset.
func (r *PostgresOrderRepository) List(ctx context.Context, filter *models.OrderListFilter) ([]*models.Order, int, error) {
	r.logger.Debug("Listing orders",
		zap.String("user_id", filter.UserID),
		zap.String("search", filter.Search),
		zap.Int("limit", filter.Limit),
		zap.Int("offset", filter.Offset))

	where, args := buildListWhere(filter)

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository.List: count: %w", err)
	}

	query := "SELECT " + orderColumns + " FROM orders " + where + " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.List: %w", err)
	}
	defer rows.Close()

	orders := make([]*models.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repository.List: scan: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repository.List: %w", err)
	}

	return orders, total, nil
}

// Update writes the descriptive fields of an existing order.
func (r *PostgresOrderRepository) Update(ctx context.Context, order *models.Order) error {
	query := `
		UPDATE orders
		SET project_title = $2, project_description = $3, english_variant = $4,
		    file_url = $5, file_name = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		order.ID,
		order.ProjectTitle,
		order.ProjectDescription,
		order.EnglishVariant,
		nullString(order.FileURL),
		nullString(order.FileName),
		order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update order", zap.String("order_id", order.ID), zap.Error(err))
		return fmt.Errorf("repository.Update: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return errors.ErrNotFound
	}
	return nil
}

// UpdateStatus applies change and records it in the status history in one
// transaction.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id string, change StatusChange) (*models.Order, error) {
	const operation = "repository.UpdateStatus"

	r.logger.Debug("Updating order status",
		zap.String("order_id", id),
		zap.String("from", string(change.From)),
		zap.String("to", string(change.To)))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: begin: %w", operation, err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	result, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $3, payment_id = COALESCE($4, payment_id), updated_at = $5
		WHERE id = $1 AND status = $2 AND deleted_at IS NULL
	`, id, change.From, change.To, nullString(change.PaymentID), now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1 AND deleted_at IS NULL)`, id,
		).Scan(&exists); err != nil {
			return nil, fmt.Errorf("%s: %w", operation, err)
		}
		if !exists {
			return nil, errors.ErrNotFound
		}
		return nil, errors.ErrConflict
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO order_status_history (order_id, from_status, to_status, note, changed_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, change.From, change.To, change.Note, now); err != nil {
		return nil, fmt.Errorf("%s: history: %w", operation, err)
	}

	order, err := scanOrder(tx.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("%s: reload: %w", operation, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: commit: %w", operation, err)
	}

	r.logger.Info("Order status updated",
		zap.String("order_id", id),
		zap.String("new_status", string(change.To)))

	return order, nil
}

// Delete soft-deletes an order.
func (r *PostgresOrderRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debug("Deleting order", zap.String("order_id", id))

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET deleted_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL
	`, id, now)
	if err != nil {
		r.logger.Error("Failed to delete order", zap.String("order_id", id), zap.Error(err))
		return fmt.Errorf("repository.Delete: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return errors.ErrNotFound
	}

	r.logger.Info("Order deleted", zap.String("order_id", id))
	return nil
}

// buildListWhere renders the WHERE clause for filter with numbered
// placeholders starting at $1.
func buildListWhere(filter *models.OrderListFilter) (string, []interface{}) {
	conditions := []string{"deleted_at IS NULL"}
	args := make([]interface{}, 0, 3)

	placeholder := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.UserID != "" {
		conditions = append(conditions, "user_id = "+placeholder(filter.UserID))
	}
	if filter.Status != nil {
		conditions = append(conditions, "status = "+placeholder(string(*filter.Status)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		p := placeholder("%" + escapeLike(strings.ToLower(search)) + "%")
		conditions = append(conditions, "(LOWER(project_title) LIKE "+p+" OR LOWER(id::text) LIKE "+p+")")
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var order models.Order
	var promotionCode, paymentID, fileURL, fileName sql.NullString

	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.OrderNumber,
		&order.ProjectTitle,
		&order.ProjectDescription,
		&order.ServiceType,
		&order.Status,
		&order.Price,
		&order.DeliveryTime,
		&order.DeliveryTimeLabel,
		&order.WordCount,
		&order.EnglishVariant,
		&promotionCode,
		&paymentID,
		&fileURL,
		&fileName,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.DueDate,
	)
	if err != nil {
		return nil, err
	}

	order.PromotionCode = promotionCode.String
	order.PaymentID = paymentID.String
	order.FileURL = fileURL.String
	order.FileName = fileName.String

	return &order, nil
}

func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505"
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
