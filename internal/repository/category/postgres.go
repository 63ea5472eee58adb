package category

import (
	"context"

	"ecoshop/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Category, error) {
	const q = `
SELECT category_id, name, COALESCE(slug, ''), created_at
FROM categories
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
INSERT INTO categories (name, slug)
VALUES ($1, NULLIF($2, ''))
ON CONFLICT (name) DO UPDATE
SET slug = COALESCE(NULLIF(EXCLUDED.slug, ''), categories.slug)
RETURNING category_id, COALESCE(slug, ''), created_at
`
	out := domain.Category{Name: c.Name}
	if err := r.pool.QueryRow(ctx, q, c.Name, c.Slug).Scan(&out.ID, &out.Slug, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}
