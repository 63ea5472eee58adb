package cart

import (
	"context"
	"errors"
	"fmt"

	"ecoshop/internal/domain"
	"go.uber.org/zap"
)

// DefaultQuantity is used when an add request carries no quantity.
const DefaultQuantity = 1

type Service struct {
	repo   cartRepo
	logger *zap.Logger
}

type cartRepo interface {
	AddItem(ctx context.Context, userID, productID int64, quantity int) (*domain.CartLine, error)
	SetQuantity(ctx context.Context, userID, productID int64, quantity int) error
	RemoveItem(ctx context.Context, userID, productID int64) error
	Clear(ctx context.Context, userID int64) error
	List(ctx context.Context, userID int64) ([]domain.CartItem, error)
}

func New(repo cartRepo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger.Named("cart")}
}

// AddItem adds quantity of a product to the user's cart, merging with an
// existing line. Quantities below 1 are raised to 1.
func (s *Service) AddItem(ctx context.Context, userID, productID int64, quantity int) (*domain.CartLine, error) {
	if err := validateKey(userID, productID); err != nil {
		return nil, err
	}
	return s.repo.AddItem(ctx, userID, productID, clampQuantity(quantity))
}

// SetQuantity overwrites the quantity of an existing line; absent lines are left alone.
func (s *Service) SetQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	if err := validateKey(userID, productID); err != nil {
		return err
	}
	return s.repo.SetQuantity(ctx, userID, productID, clampQuantity(quantity))
}

func (s *Service) RemoveItem(ctx context.Context, userID, productID int64) error {
	if err := validateKey(userID, productID); err != nil {
		return err
	}
	return s.repo.RemoveItem(ctx, userID, productID)
}

// RemoveMany removes each product from the cart. Every removal is attempted
// even when an earlier one fails; the failures are logged and returned joined.
func (s *Service) RemoveMany(ctx context.Context, userID int64, productIDs []int64) error {
	if userID <= 0 {
		return domain.ErrMissingUser
	}
	var errs []error
	for _, pid := range productIDs {
		if err := s.RemoveItem(ctx, userID, pid); err != nil {
			s.logger.Warn("remove cart item failed",
				zap.Int64("user_id", userID),
				zap.Int64("product_id", pid),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("product %d: %w", pid, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Service) Clear(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return domain.ErrMissingUser
	}
	return s.repo.Clear(ctx, userID)
}

func (s *Service) List(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	if userID <= 0 {
		return nil, domain.ErrMissingUser
	}
	items, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	return items, nil
}

func validateKey(userID, productID int64) error {
	if userID <= 0 {
		return domain.ErrMissingUser
	}
	if productID <= 0 {
		return domain.ErrMissingProduct
	}
	return nil
}

func clampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}
