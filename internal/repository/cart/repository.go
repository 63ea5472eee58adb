package cart

import (
	"context"

	"ecoshop/internal/domain"
)

// Repository stores cart lines keyed by (user_id, product_id).
type Repository interface {
	AddItem(ctx context.Context, userID, productID int64, quantity int) (*domain.CartLine, error)
	SetQuantity(ctx context.Context, userID, productID int64, quantity int) error
	RemoveItem(ctx context.Context, userID, productID int64) error
	Clear(ctx context.Context, userID int64) error
	List(ctx context.Context, userID int64) ([]domain.CartItem, error)
}
