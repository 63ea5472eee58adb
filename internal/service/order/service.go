package order

import (
	"context"
	"fmt"
	"strings"

	"ecoshop/internal/domain"
	"ecoshop/internal/pricing"
	"go.uber.org/zap"
)

type Service struct {
	orders   orderStore
	products priceLookup
	policy   pricing.Policy
	logger   *zap.Logger
}

type orderStore interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
}

type priceLookup interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Product, error)
}

func New(orders orderStore, products priceLookup, policy pricing.Policy, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{orders: orders, products: products, policy: policy, logger: logger.Named("order")}
}

// PlaceOrder validates the request, bills it at the current catalog prices and
// persists it with status submitted. Nothing is written when validation or
// price resolution fails. Removing the ordered products from the cart is left
// to the caller.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	if in.UserID <= 0 {
		return nil, domain.ErrMissingUser
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	ids := make([]int64, 0, len(in.Items))
	for i, it := range in.Items {
		if it.ProductID <= 0 {
			return nil, domain.Invalid("product_id", "item %d: missing product_id", i)
		}
		if it.Quantity < 1 {
			return nil, domain.Invalid("quantity", "item %d: quantity must be at least 1", i)
		}
		ids = append(ids, it.ProductID)
	}

	catalog, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, domain.Persistence("resolve prices", err)
	}

	items := make([]domain.OrderLineItem, 0, len(in.Items))
	lines := make([]pricing.LineItem, 0, len(in.Items))
	for _, it := range in.Items {
		p, ok := catalog[it.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %d: %w", it.ProductID, domain.ErrNotFound)
		}
		if it.ClientPrice != nil && !it.ClientPrice.Equal(p.Price.Decimal) {
			s.logger.Warn("client price differs from catalog",
				zap.Int64("user_id", in.UserID),
				zap.Int64("product_id", it.ProductID),
				zap.String("client_price", it.ClientPrice.String()),
				zap.String("catalog_price", p.Price.StringFixed(2)))
		}
		items = append(items, domain.OrderLineItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  it.Quantity,
		})
		lines = append(lines, pricing.LineItem{Price: p.Price.Decimal, Quantity: int64(it.Quantity)})
	}

	totals := pricing.Compute(lines, s.policy)

	payment := strings.TrimSpace(in.PaymentMethod)
	if payment == "" {
		payment = domain.DefaultPaymentMethod
	}

	created, err := s.orders.Create(ctx, domain.Order{
		UserID:          in.UserID,
		CustomerName:    in.CustomerName,
		ShippingAddress: in.ShippingAddress,
		Items:           items,
		Billing: &domain.BillingDetails{
			Subtotal: domain.NewMoney(totals.Subtotal),
			Shipping: domain.NewMoney(totals.Shipping),
			Tax:      domain.NewMoney(totals.Tax),
			Total:    domain.NewMoney(totals.Total),
		},
		PaymentMethod: payment,
		Status:        domain.OrderStatusSubmitted,
	})
	if err != nil {
		return nil, domain.Persistence("create order", err)
	}
	return created, nil
}

// ListOrders returns orders newest first. A zero filter lists every user's orders.
func (s *Service) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if filter.UserID < 0 {
		return nil, domain.Invalid("user_id", "user_id must be positive")
	}
	list, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, domain.Persistence("list orders", err)
	}
	if list == nil {
		list = []domain.Order{}
	}
	return list, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	if id <= 0 {
		return nil, domain.Invalid("order_id", "missing order_id")
	}
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Persistence("get order", err)
	}
	return o, nil
}
