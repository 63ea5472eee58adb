package favorite

import (
	"context"

	"ecoshop/internal/domain"
)

type Repository interface {
	Add(ctx context.Context, userID, productID int64) (*domain.Favorite, error)
	Remove(ctx context.Context, userID, productID int64) error
	List(ctx context.Context, userID int64) ([]domain.Product, error)
}
