package client

import (
	"context"
	"errors"
	"testing"

	"ecoshop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is an in-memory cart that can be told to reject mutations.
type fakeAPI struct {
	lines     map[int64]domain.CartItem
	failNext  error
	cartErr   error
	cartCalls int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{lines: map[int64]domain.CartItem{}}
}

func (f *fakeAPI) fail() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeAPI) AddToCart(_ context.Context, _ int64, productID int64, quantity int) error {
	if err := f.fail(); err != nil {
		return err
	}
	it := f.lines[productID]
	it.ProductID = productID
	it.Quantity += quantity
	f.lines[productID] = it
	return nil
}

func (f *fakeAPI) UpdateCart(_ context.Context, _ int64, productID int64, quantity int) error {
	if err := f.fail(); err != nil {
		return err
	}
	if it, ok := f.lines[productID]; ok {
		it.Quantity = quantity
		f.lines[productID] = it
	}
	return nil
}

func (f *fakeAPI) RemoveFromCart(_ context.Context, _ int64, productID int64) error {
	if err := f.fail(); err != nil {
		return err
	}
	delete(f.lines, productID)
	return nil
}

func (f *fakeAPI) ClearCart(context.Context, int64) error {
	if err := f.fail(); err != nil {
		return err
	}
	f.lines = map[int64]domain.CartItem{}
	return nil
}

func (f *fakeAPI) Cart(context.Context, int64) ([]domain.CartItem, error) {
	f.cartCalls++
	if f.cartErr != nil {
		return nil, f.cartErr
	}
	out := []domain.CartItem{}
	for _, it := range f.lines {
		out = append(out, it)
	}
	return out, nil
}

var brush = domain.Product{ID: 1, Name: "Bamboo Brush", Price: domain.MoneyFromString("100")}

func TestMirror_OptimisticAdd(t *testing.T) {
	api := newFakeAPI()
	m := NewCartMirror(api, 7, nil)

	require.NoError(t, m.Add(context.Background(), brush, 2))
	require.NoError(t, m.Add(context.Background(), brush, 0))

	items, stale := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "Bamboo Brush", items[0].Name)
	assert.True(t, stale, "never refreshed")
	assert.Zero(t, api.cartCalls, "success needs no refetch")
	assert.Equal(t, 3, api.lines[1].Quantity)
}

func TestMirror_FailedMutationRefetches(t *testing.T) {
	api := newFakeAPI()
	m := NewCartMirror(api, 7, nil)
	require.NoError(t, m.Add(context.Background(), brush, 2))

	boom := errors.New("503")
	api.failNext = boom
	err := m.SetQuantity(context.Background(), 1, 9)
	assert.ErrorIs(t, err, boom)

	items, stale := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity, "local change rolled back to the server state")
	assert.False(t, stale)
	assert.Equal(t, 1, api.cartCalls)
}

func TestMirror_FailedRefetchMarksStale(t *testing.T) {
	api := newFakeAPI()
	m := NewCartMirror(api, 7, nil)
	require.NoError(t, m.Add(context.Background(), brush, 1))

	boom := errors.New("remove failed")
	api.failNext = boom
	api.cartErr = errors.New("refetch failed")
	err := m.Remove(context.Background(), 1)
	assert.ErrorIs(t, err, boom, "caller sees the mutation error, not the refetch error")

	items, stale := m.Items()
	assert.Empty(t, items)
	assert.True(t, stale)
}

func TestMirror_ClearAndRefresh(t *testing.T) {
	api := newFakeAPI()
	m := NewCartMirror(api, 7, nil)
	require.NoError(t, m.Add(context.Background(), brush, 1))
	require.NoError(t, m.Clear(context.Background()))

	items, _ := m.Items()
	assert.Empty(t, items)
	assert.Empty(t, api.lines)

	api.lines[5] = domain.CartItem{ProductID: 5, Quantity: 4}
	require.NoError(t, m.Refresh(context.Background()))
	items, stale := m.Items()
	require.Len(t, items, 1)
	assert.False(t, stale)
}

func TestMirror_SetQuantityClamps(t *testing.T) {
	api := newFakeAPI()
	m := NewCartMirror(api, 7, nil)
	require.NoError(t, m.Add(context.Background(), brush, 3))
	require.NoError(t, m.SetQuantity(context.Background(), 1, -2))

	items, _ := m.Items()
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 1, api.lines[1].Quantity)
}
