package httpserver

import (
	"context"
	"errors"
	"sort"
	"testing"

	"ecoshop/internal/domain"
	"ecoshop/internal/pricing"
	ordersvc "ecoshop/internal/service/order"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCartService struct {
	added      []domain.CartLine
	set        []domain.CartLine
	removed    [][2]int64
	removeMany map[int64][]int64
	removeErr  error
	cleared    []int64
	items      []domain.CartItem
}

func (s *stubCartService) AddItem(_ context.Context, userID, productID int64, quantity int) (*domain.CartLine, error) {
	if userID <= 0 {
		return nil, domain.ErrMissingUser
	}
	if productID <= 0 {
		return nil, domain.ErrMissingProduct
	}
	line := domain.CartLine{UserID: userID, ProductID: productID, Quantity: quantity}
	s.added = append(s.added, line)
	return &line, nil
}

func (s *stubCartService) SetQuantity(_ context.Context, userID, productID int64, quantity int) error {
	s.set = append(s.set, domain.CartLine{UserID: userID, ProductID: productID, Quantity: quantity})
	return nil
}

func (s *stubCartService) RemoveItem(_ context.Context, userID, productID int64) error {
	s.removed = append(s.removed, [2]int64{userID, productID})
	return nil
}

func (s *stubCartService) RemoveMany(_ context.Context, userID int64, productIDs []int64) error {
	if s.removeMany == nil {
		s.removeMany = map[int64][]int64{}
	}
	s.removeMany[userID] = append(s.removeMany[userID], productIDs...)
	return s.removeErr
}

func (s *stubCartService) Clear(_ context.Context, userID int64) error {
	s.cleared = append(s.cleared, userID)
	return nil
}

func (s *stubCartService) List(context.Context, int64) ([]domain.CartItem, error) {
	if s.items == nil {
		return []domain.CartItem{}, nil
	}
	return s.items, nil
}

type stubFavoriteService struct {
	added   [][2]int64
	removed [][2]int64
}

func (s *stubFavoriteService) Add(_ context.Context, userID, productID int64) (*domain.Favorite, error) {
	if userID <= 0 {
		return nil, domain.ErrMissingUser
	}
	s.added = append(s.added, [2]int64{userID, productID})
	return &domain.Favorite{UserID: userID, ProductID: productID}, nil
}

func (s *stubFavoriteService) Remove(_ context.Context, userID, productID int64) error {
	if userID <= 0 {
		return domain.ErrMissingUser
	}
	s.removed = append(s.removed, [2]int64{userID, productID})
	return nil
}

func (s *stubFavoriteService) List(context.Context, int64) ([]domain.Product, error) {
	return []domain.Product{{ID: 1, Name: "Bamboo Brush", Price: domain.MoneyFromString("100")}}, nil
}

type stubProductService struct {
	products  map[int64]domain.Product
	listErr   error
	inserted  []domain.Product
	newPrices map[int64]domain.Money
}

func (s *stubProductService) List(context.Context) ([]domain.Product, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubProductService) Get(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *stubProductService) BulkInsert(_ context.Context, products []domain.Product) (int, error) {
	if len(products) == 0 {
		return 0, domain.Invalid("products", "products must be a non-empty array")
	}
	s.inserted = append(s.inserted, products...)
	return len(products) - 1, nil
}

func (s *stubProductService) UpdatePrice(_ context.Context, id int64, price domain.Money) error {
	if !price.IsPositive() {
		return domain.Invalid("price", "price is required")
	}
	if _, ok := s.products[id]; !ok {
		return domain.ErrNotFound
	}
	if s.newPrices == nil {
		s.newPrices = map[int64]domain.Money{}
	}
	s.newPrices[id] = price
	return nil
}

func (s *stubProductService) Delete(context.Context, int64) error { return nil }

// GetByIDs lets the stub double as the order service's price lookup.
func (s *stubProductService) GetByIDs(_ context.Context, ids []int64) (map[int64]domain.Product, error) {
	out := map[int64]domain.Product{}
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type stubCategoryService struct{}

func (stubCategoryService) List(context.Context) ([]domain.Category, error) {
	return []domain.Category{{ID: 1, Name: "Kitchen", Slug: "kitchen"}}, nil
}

type memoryOrders struct {
	orders    []domain.Order
	createErr error
}

func (m *memoryOrders) Create(_ context.Context, o domain.Order) (*domain.Order, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	o.ID = int64(len(m.orders) + 1)
	m.orders = append(m.orders, o)
	return &o, nil
}

func (m *memoryOrders) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	for _, o := range m.orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memoryOrders) List(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	var out []domain.Order
	for i := len(m.orders) - 1; i >= 0; i-- {
		if filter.UserID == 0 || m.orders[i].UserID == filter.UserID {
			out = append(out, m.orders[i])
		}
	}
	return out, nil
}

var errStorageDown = errors.New("dial tcp 10.0.0.5:5432: connection refused")

type fixture struct {
	router    *gin.Engine
	cart      *stubCartService
	favorites *stubFavoriteService
	products  *stubProductService
	orders    *memoryOrders
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		cart:      &stubCartService{},
		favorites: &stubFavoriteService{},
		products: &stubProductService{products: map[int64]domain.Product{
			1: {ID: 1, Name: "Bamboo Brush", Price: domain.MoneyFromString("100")},
			2: {ID: 2, Name: "Cotton Tote", Price: domain.MoneyFromString("50")},
		}},
		orders: &memoryOrders{},
	}
	policy := pricing.Policy{
		FlatShippingFee:       decimal.NewFromInt(40),
		FreeShippingThreshold: decimal.NewFromInt(1000),
		TaxRate:               decimal.RequireFromString("0.02"),
	}
	router, err := buildRouter(zap.NewNop(), nil, Deps{
		CartSvc:     f.cart,
		FavoriteSvc: f.favorites,
		OrderSvc:    ordersvc.New(f.orders, f.products, policy, nil),
		ProductSvc:  f.products,
		CategorySvc: stubCategoryService{},
	}, nil)
	require.NoError(t, err)
	f.router = router
	return f
}
