package product

import (
	"context"

	"ecoshop/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Product, error)
	InsertMany(ctx context.Context, products []domain.Product) (int, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
	UpdatePrice(ctx context.Context, id int64, price domain.Money) error
	Delete(ctx context.Context, id int64) error
}
