package favorite

import (
	"context"

	"ecoshop/internal/domain"
)

type Service struct {
	repo favoriteRepo
}

type favoriteRepo interface {
	Add(ctx context.Context, userID, productID int64) (*domain.Favorite, error)
	Remove(ctx context.Context, userID, productID int64) error
	List(ctx context.Context, userID int64) ([]domain.Product, error)
}

func New(repo favoriteRepo) *Service {
	return &Service{repo: repo}
}

// Add favorites a product. Adding an existing favorite refreshes it.
func (s *Service) Add(ctx context.Context, userID, productID int64) (*domain.Favorite, error) {
	if err := validate(userID, productID); err != nil {
		return nil, err
	}
	return s.repo.Add(ctx, userID, productID)
}

func (s *Service) Remove(ctx context.Context, userID, productID int64) error {
	if err := validate(userID, productID); err != nil {
		return err
	}
	return s.repo.Remove(ctx, userID, productID)
}

func (s *Service) List(ctx context.Context, userID int64) ([]domain.Product, error) {
	if userID <= 0 {
		return nil, domain.ErrMissingUser
	}
	products, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func validate(userID, productID int64) error {
	if userID <= 0 {
		return domain.ErrMissingUser
	}
	if productID <= 0 {
		return domain.ErrMissingProduct
	}
	return nil
}
