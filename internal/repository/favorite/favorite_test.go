package favorite

import (
	"context"
	"errors"
	"testing"

	"ecoshop/internal/domain"
	"ecoshop/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgres_AddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Pool(t)
	pid := testdb.InsertProduct(ctx, t, pool, "Tote", "9.99")
	repo := NewPostgres(pool, nil)

	first, err := repo.Add(ctx, 3, pid)
	require.NoError(t, err)
	second, err := repo.Add(ctx, 3, pid)
	require.NoError(t, err)
	assert.False(t, second.CreatedAt.Before(first.CreatedAt), "re-adding refreshes the timestamp")

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM favorites WHERE user_id = 3`).Scan(&count))
	assert.Equal(t, 1, count)

	list, err := repo.List(ctx, 3)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Tote", list[0].Name)
}

func TestPostgres_RemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Pool(t)
	pid := testdb.InsertProduct(ctx, t, pool, "Tote", "9.99")
	repo := NewPostgres(pool, nil)

	_, err := repo.Add(ctx, 3, pid)
	require.NoError(t, err)
	require.NoError(t, repo.Remove(ctx, 3, pid))
	require.NoError(t, repo.Remove(ctx, 3, pid))

	list, err := repo.List(ctx, 3)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestPostgres_AddUnknownProduct(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Pool(t)
	repo := NewPostgres(pool, nil)

	_, err := repo.Add(ctx, 3, 777)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
