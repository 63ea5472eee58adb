package favorite

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
	return &postgresRepo{pool: pool, logger: logger.Named("favorite_repo")}
}

// Add upserts the favorite. An existing entry gets its created_at refreshed.
func (r *postgresRepo) Add(ctx context.Context, userID, productID int64) (*domain.Favorite, error) {
	const q = `
INSERT INTO favorites (user_id, product_id)
VALUES ($1, $2)
ON CONFLICT (user_id, product_id) DO UPDATE SET created_at = now()
RETURNING user_id, product_id, created_at
`
	var f domain.Favorite
	if err := r.pool.QueryRow(ctx, q, userID, productID).Scan(&f.UserID, &f.ProductID, &f.CreatedAt); err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("add", zap.Int64("user_id", userID), zap.Int64("product_id", productID), zap.Error(err))
		return nil, err
	}
	return &f, nil
}

func (r *postgresRepo) Remove(ctx context.Context, userID, productID int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`, userID, productID); err != nil {
		r.logger.Error("remove", zap.Int64("user_id", userID), zap.Int64("product_id", productID), zap.Error(err))
		return err
	}
	return nil
}

// List returns the favorited products, most recently favorited first.
func (r *postgresRepo) List(ctx context.Context, userID int64) ([]domain.Product, error) {
	const q = `
SELECT p.product_id, p.name, p.price, p.category, p.image, p.description, p.created_at
FROM favorites f
JOIN products p ON f.product_id = p.product_id
WHERE f.user_id = $1
ORDER BY f.created_at DESC, p.product_id ASC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		r.logger.Error("list", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Image, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
