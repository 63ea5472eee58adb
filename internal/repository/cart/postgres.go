package cart

import (
	"context"

	"ecoshop/internal/db"
	"ecoshop/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger.Named("cart_repo")}
}

// AddItem inserts the line or increments its quantity in a single statement,
// so concurrent adds for the same key never lose an increment.
func (r *postgresRepo) AddItem(ctx context.Context, userID, productID int64, quantity int) (*domain.CartLine, error) {
	const q = `
INSERT INTO cart_items (user_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, product_id) DO UPDATE
SET quantity = cart_items.quantity + EXCLUDED.quantity,
    updated_at = now()
RETURNING user_id, product_id, quantity, created_at, updated_at
`
	var line domain.CartLine
	err := r.pool.QueryRow(ctx, q, userID, productID, quantity).Scan(
		&line.UserID,
		&line.ProductID,
		&line.Quantity,
		&line.CreatedAt,
		&line.UpdatedAt,
	)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("add item", zap.Int64("user_id", userID), zap.Int64("product_id", productID), zap.Error(err))
		return nil, err
	}
	r.logger.Debug("add item", zap.Int64("user_id", userID), zap.Int64("product_id", productID), zap.Int("quantity", line.Quantity))
	return &line, nil
}

// SetQuantity overwrites the quantity of an existing line. A missing line is not an error.
func (r *postgresRepo) SetQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	const q = `
UPDATE cart_items
SET quantity = $3, updated_at = now()
WHERE user_id = $1 AND product_id = $2
`
	tag, err := r.pool.Exec(ctx, q, userID, productID, quantity)
	if err != nil {
		r.logger.Error("set quantity", zap.Int64("user_id", userID), zap.Int64("product_id", productID), zap.Error(err))
		return err
	}
	r.logger.Debug("set quantity", zap.Int64("user_id", userID), zap.Int64("product_id", productID), zap.Int64("rows", tag.RowsAffected()))
	return nil
}

func (r *postgresRepo) RemoveItem(ctx context.Context, userID, productID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		r.logger.Error("remove item", zap.Int64("user_id", userID), zap.Int64("product_id", productID), zap.Error(err))
		return err
	}
	return nil
}

func (r *postgresRepo) Clear(ctx context.Context, userID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		r.logger.Error("clear", zap.Int64("user_id", userID), zap.Error(err))
		return err
	}
	r.logger.Debug("clear", zap.Int64("user_id", userID), zap.Int64("rows", tag.RowsAffected()))
	return nil
}

func (r *postgresRepo) List(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	const q = `
SELECT c.product_id, c.quantity, p.name, p.price, p.image
FROM cart_items c
JOIN products p ON c.product_id = p.product_id
WHERE c.user_id = $1
ORDER BY c.created_at ASC, c.product_id ASC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		r.logger.Error("list", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		var it domain.CartItem
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.Name, &it.Price, &it.Image); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
