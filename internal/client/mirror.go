package client

import (
	"context"
	"slices"
	"sync"

	"ecoshop/internal/domain"
	"go.uber.org/zap"
)

// CartAPI is the remote cart the mirror reconciles against. *Client satisfies it.
type CartAPI interface {
	AddToCart(ctx context.Context, userID, productID int64, quantity int) error
	UpdateCart(ctx context.Context, userID, productID int64, quantity int) error
	RemoveFromCart(ctx context.Context, userID, productID int64) error
	ClearCart(ctx context.Context, userID int64) error
	Cart(ctx context.Context, userID int64) ([]domain.CartItem, error)
}

// CartMirror is a local copy of one user's cart. Mutations are applied to the
// copy first and then sent to the API. When the API call fails the copy is
// replaced by a fresh fetch, and if that also fails the copy is dropped until
// the next successful Refresh.
type CartMirror struct {
	api    CartAPI
	userID int64
	logger *zap.Logger

	mu    sync.Mutex
	items []domain.CartItem
	stale bool
}

func NewCartMirror(api CartAPI, userID int64, logger *zap.Logger) *CartMirror {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartMirror{
		api:    api,
		userID: userID,
		logger: logger.Named("cart_mirror").With(zap.Int64("user_id", userID)),
		items:  []domain.CartItem{},
		stale:  true,
	}
}

// Items returns a copy of the local cart and whether it may be out of date.
func (m *CartMirror) Items() ([]domain.CartItem, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.items), m.stale
}

// Refresh replaces the local copy with the API's cart.
func (m *CartMirror) Refresh(ctx context.Context) error {
	items, err := m.api.Cart(ctx, m.userID)
	if err != nil {
		m.mu.Lock()
		m.items = []domain.CartItem{}
		m.stale = true
		m.mu.Unlock()
		return err
	}
	m.mu.Lock()
	m.items = items
	m.stale = false
	m.mu.Unlock()
	return nil
}

// Add increments the product's line, creating it from p when absent.
func (m *CartMirror) Add(ctx context.Context, p domain.Product, quantity int) error {
	quantity = max(quantity, 1)
	return m.mutate(ctx, "add", func(items []domain.CartItem) []domain.CartItem {
		if i := indexOf(items, p.ID); i >= 0 {
			items[i].Quantity += quantity
			return items
		}
		return append(items, domain.CartItem{
			ProductID: p.ID,
			Quantity:  quantity,
			Name:      p.Name,
			Price:     p.Price,
			Image:     p.Image,
		})
	}, func(ctx context.Context) error {
		return m.api.AddToCart(ctx, m.userID, p.ID, quantity)
	})
}

func (m *CartMirror) SetQuantity(ctx context.Context, productID int64, quantity int) error {
	quantity = max(quantity, 1)
	return m.mutate(ctx, "set_quantity", func(items []domain.CartItem) []domain.CartItem {
		if i := indexOf(items, productID); i >= 0 {
			items[i].Quantity = quantity
		}
		return items
	}, func(ctx context.Context) error {
		return m.api.UpdateCart(ctx, m.userID, productID, quantity)
	})
}

func (m *CartMirror) Remove(ctx context.Context, productID int64) error {
	return m.mutate(ctx, "remove", func(items []domain.CartItem) []domain.CartItem {
		return slices.DeleteFunc(items, func(it domain.CartItem) bool { return it.ProductID == productID })
	}, func(ctx context.Context) error {
		return m.api.RemoveFromCart(ctx, m.userID, productID)
	})
}

func (m *CartMirror) Clear(ctx context.Context) error {
	return m.mutate(ctx, "clear", func([]domain.CartItem) []domain.CartItem {
		return []domain.CartItem{}
	}, func(ctx context.Context) error {
		return m.api.ClearCart(ctx, m.userID)
	})
}

// mutate applies the local change, then the remote call. A failed remote call
// triggers a compensating refetch; the remote error is what the caller sees.
func (m *CartMirror) mutate(ctx context.Context, op string, local func([]domain.CartItem) []domain.CartItem, remote func(context.Context) error) error {
	m.mu.Lock()
	m.items = local(slices.Clone(m.items))
	m.mu.Unlock()

	err := remote(ctx)
	if err == nil {
		return nil
	}

	m.logger.Warn("cart mutation failed, refetching", zap.String("op", op), zap.Error(err))
	if rerr := m.Refresh(ctx); rerr != nil {
		m.logger.Warn("cart refetch failed", zap.String("op", op), zap.Error(rerr))
	}
	return err
}

func indexOf(items []domain.CartItem, productID int64) int {
	return slices.IndexFunc(items, func(it domain.CartItem) bool { return it.ProductID == productID })
}
