package product

import (
	"context"
	"errors"

	"ecoshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const selectColumns = `product_id, name, price, category, image, description, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger.Named("product_repo")}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+selectColumns+` FROM products ORDER BY product_id ASC`)
	if err != nil {
		r.logger.Error("list", zap.Error(err))
		return nil, err
	}
	result, err := pgx.CollectRows(rows, scanProduct)
	if err != nil {
		r.logger.Error("list rows", zap.Error(err))
		return nil, err
	}
	r.logger.Debug("list", zap.Int("count", len(result)))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+selectColumns+` FROM products WHERE product_id = $1`, id)
	if err != nil {
		return nil, err
	}
	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("get not found", zap.Int64("product_id", id))
			return nil, domain.ErrNotFound
		}
		r.logger.Error("get", zap.Int64("product_id", id), zap.Error(err))
		return nil, err
	}
	return &p, nil
}

// GetByIDs resolves the current catalog rows for ids. Unknown ids are absent
// from the result map.
func (r *postgresRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Product, error) {
	out := make(map[int64]domain.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+selectColumns+` FROM products WHERE product_id = ANY($1)`, ids)
	if err != nil {
		r.logger.Error("get many", zap.Int64s("product_ids", ids), zap.Error(err))
		return nil, err
	}
	list, err := pgx.CollectRows(rows, scanProduct)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}

// InsertMany inserts products in one transaction, skipping names that already exist.
func (r *postgresRepo) InsertMany(ctx context.Context, products []domain.Product) (int, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(`
INSERT INTO products (name, price, category, image, description)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (name) DO NOTHING
`, p.Name, p.Price, p.Category, p.Image, p.Description)
	}
	results := tx.SendBatch(ctx, batch)
	inserted := 0
	for range products {
		tag, err := results.Exec()
		if err != nil {
			results.Close()
			r.logger.Error("insert many", zap.Error(err))
			return 0, err
		}
		inserted += int(tag.RowsAffected())
	}
	if err := results.Close(); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	r.logger.Info("insert many", zap.Int("received", len(products)), zap.Int("inserted", inserted))
	return inserted, nil
}

// Upsert inserts a product or refreshes the row with the same name.
func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, price, category, image, description)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (name) DO UPDATE SET
    price = EXCLUDED.price,
    category = EXCLUDED.category,
    image = EXCLUDED.image,
    description = EXCLUDED.description
RETURNING ` + selectColumns
	rows, err := r.pool.Query(ctx, q, product.Name, product.Price, product.Category, product.Image, product.Description)
	if err != nil {
		return nil, err
	}
	res, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		r.logger.Error("upsert", zap.String("name", product.Name), zap.Error(err))
		return nil, err
	}
	r.logger.Debug("upserted", zap.String("name", res.Name), zap.Int64("product_id", res.ID))
	return &res, nil
}

func (r *postgresRepo) UpdatePrice(ctx context.Context, id int64, price domain.Money) error {
	tag, err := r.pool.Exec(ctx, `UPDATE products SET price = $1 WHERE product_id = $2`, price, id)
	if err != nil {
		r.logger.Error("update price", zap.Int64("product_id", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Info("price updated", zap.Int64("product_id", id), zap.String("price", price.StringFixed(2)))
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM products WHERE product_id = $1`, id); err != nil {
		r.logger.Error("delete", zap.Int64("product_id", id), zap.Error(err))
		return err
	}
	return nil
}

func scanProduct(row pgx.CollectableRow) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Image, &p.Description, &p.CreatedAt)
	return p, err
}
