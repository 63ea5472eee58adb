package order

import (
	"context"
	"errors"
	"fmt"

	"ecoshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const selectColumns = `order_id, user_id, customer_name, shipping_address, products, billing_details, payment_method, status, order_date`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger.Named("order_repo")}
}

// Create stores the order in one row, items and billing included, so a
// partially written order is never visible.
func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	items, err := domain.EncodeOrderItems(o.Items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	if o.Billing == nil {
		return nil, errors.New("order billing required")
	}
	billing, err := domain.EncodeBilling(*o.Billing)
	if err != nil {
		return nil, fmt.Errorf("encode billing: %w", err)
	}

	const q = `
INSERT INTO orders (user_id, customer_name, shipping_address, products, billing_details, payment_method, status, order_date)
VALUES ($1, $2, $3, $4, $5, $6, $7, now())
RETURNING ` + selectColumns
	rows, err := r.pool.Query(ctx, q, o.UserID, o.CustomerName, o.ShippingAddress, string(items), string(billing), o.PaymentMethod, o.Status)
	if err != nil {
		r.logger.Error("create", zap.Int64("user_id", o.UserID), zap.Error(err))
		return nil, err
	}
	created, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		r.logger.Error("create", zap.Int64("user_id", o.UserID), zap.Error(err))
		return nil, err
	}
	r.logger.Info("order created",
		zap.Int64("order_id", created.ID),
		zap.Int64("user_id", created.UserID),
		zap.Int("items", len(created.Items)),
		zap.String("total", created.Billing.Total.StringFixed(2)))
	return &created, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+selectColumns+` FROM orders WHERE order_id = $1`, id)
	if err != nil {
		return nil, err
	}
	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("get", zap.Int64("order_id", id), zap.Error(err))
		return nil, err
	}
	return &o, nil
}

// List returns orders newest first, optionally scoped to one user.
func (r *postgresRepo) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	q := `SELECT ` + selectColumns + ` FROM orders`
	var args []any
	if filter.UserID != 0 {
		q += ` WHERE user_id = $1`
		args = append(args, filter.UserID)
	}
	q += ` ORDER BY order_date DESC, order_id DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error("list", zap.Int64("user_id", filter.UserID), zap.Error(err))
		return nil, err
	}
	orders, err := pgx.CollectRows(rows, scanOrder)
	if err != nil {
		r.logger.Error("list rows", zap.Int64("user_id", filter.UserID), zap.Error(err))
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func scanOrder(row pgx.CollectableRow) (domain.Order, error) {
	var (
		o       domain.Order
		items   []byte
		billing []byte
	)
	if err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.CustomerName,
		&o.ShippingAddress,
		&items,
		&billing,
		&o.PaymentMethod,
		&o.Status,
		&o.OrderDate,
	); err != nil {
		return o, err
	}
	o.Items = domain.DecodeOrderItems(items)
	o.Billing = domain.DecodeBilling(billing)
	return o, nil
}
