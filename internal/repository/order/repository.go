package order

import (
	"context"

	"ecoshop/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
}
