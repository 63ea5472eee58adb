package product

import (
	"context"
	"strings"

	"ecoshop/internal/domain"
	productrepo "ecoshop/internal/repository/product"
	"go.uber.org/zap"
)

type Service struct {
	repo   productrepo.Repository
	logger *zap.Logger
}

func New(repo productrepo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger.Named("product")}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Product{}
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, domain.ErrMissingProduct
	}
	return s.repo.GetByID(ctx, id)
}

// BulkInsert inserts the products in one transaction. Products whose name
// already exists are skipped; the number actually inserted is returned.
func (s *Service) BulkInsert(ctx context.Context, products []domain.Product) (int, error) {
	if len(products) == 0 {
		return 0, domain.Invalid("products", "products must be a non-empty array")
	}
	clean := make([]domain.Product, 0, len(products))
	for i, p := range products {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return 0, domain.Invalid("name", "product %d: name is required", i)
		}
		if p.Price.IsNegative() {
			return 0, domain.Invalid("price", "product %d: price must not be negative", i)
		}
		clean = append(clean, p)
	}
	inserted, err := s.repo.InsertMany(ctx, clean)
	if err != nil {
		return 0, err
	}
	s.logger.Info("bulk insert",
		zap.Int("requested", len(clean)),
		zap.Int("inserted", inserted))
	return inserted, nil
}

// UpdatePrice sets a new catalog price. Existing orders keep their snapshot.
func (s *Service) UpdatePrice(ctx context.Context, id int64, price domain.Money) error {
	if id <= 0 {
		return domain.ErrMissingProduct
	}
	if !price.IsPositive() {
		return domain.Invalid("price", "price is required")
	}
	return s.repo.UpdatePrice(ctx, id, price)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrMissingProduct
	}
	return s.repo.Delete(ctx, id)
}
