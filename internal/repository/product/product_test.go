package product

import (
	"context"
	"errors"
	"testing"

	"ecoshop/internal/domain"
	"ecoshop/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgres_ListAndGet(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Pool(t)
	pid := testdb.InsertProduct(ctx, t, pool, "Bamboo Toothbrush", "4.50")

	repo := NewPostgres(pool, nil)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "4.50", list[0].Price.StringFixed(2))

	got, err := repo.GetByID(ctx, pid)
	require.NoError(t, err)
	assert.Equal(t, "Bamboo Toothbrush", got.Name)

	_, err = repo.GetByID(ctx, pid+100)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestPostgres_GetByIDs(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Pool(t)
	a := testdb.InsertProduct(ctx, t, pool, "A", "1.00")
	b := testdb.InsertProduct(ctx, t, pool, "B", "2.00")

	repo := NewPostgres(pool, nil)
	got, err := repo.GetByIDs(ctx, []int64{a, b, 999})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "2.00", got[b].Price.StringFixed(2))

	empty, err := repo.GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPostgres_InsertManySkipsDuplicates(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Pool(t)
	repo := NewPostgres(pool, nil)

	n, err := repo.InsertMany(ctx, []domain.Product{
		{Name: "Jar", Price: domain.MoneyFromString("3.00"), Category: "kitchen"},
		{Name: "Tote", Price: domain.MoneyFromString("9.99"), Category: "bags"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.InsertMany(ctx, []domain.Product{
		{Name: "Jar", Price: domain.MoneyFromString("5.00")},
		{Name: "Soap", Price: domain.MoneyFromString("2.25")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "3.00", list[0].Price.StringFixed(2), "existing row untouched")
}

func TestPostgres_UpsertUpdatePriceDelete(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Pool(t)
	repo := NewPostgres(pool, nil)

	p, err := repo.Upsert(ctx, domain.Product{Name: "Jar", Price: domain.MoneyFromString("3.00")})
	require.NoError(t, err)
	again, err := repo.Upsert(ctx, domain.Product{Name: "Jar", Price: domain.MoneyFromString("4.00"), Category: "kitchen"})
	require.NoError(t, err)
	assert.Equal(t, p.ID, again.ID)
	assert.Equal(t, "kitchen", again.Category)

	require.NoError(t, repo.UpdatePrice(ctx, p.ID, domain.MoneyFromString("7.25")))
	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "7.25", got.Price.StringFixed(2))

	assert.True(t, errors.Is(repo.UpdatePrice(ctx, 9999, domain.MoneyFromString("1")), domain.ErrNotFound))

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.GetByID(ctx, p.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
