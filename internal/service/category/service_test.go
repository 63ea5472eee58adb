package category

import (
	"context"
	"testing"

	"ecoshop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	upserted []domain.Category
}

func (s *stubRepo) List(context.Context) ([]domain.Category, error) { return nil, nil }

func (s *stubRepo) Upsert(_ context.Context, c domain.Category) (*domain.Category, error) {
	s.upserted = append(s.upserted, c)
	return &c, nil
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Home & Kitchen":   "home-kitchen",
		"  Personal Care ": "personal-care",
		"Zero-Waste 101":   "zero-waste-101",
		"!!!":              "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestUpsert_DerivesSlug(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	got, err := svc.Upsert(context.Background(), domain.Category{Name: " Kitchen "})
	require.NoError(t, err)
	assert.Equal(t, "Kitchen", got.Name)
	assert.Equal(t, "kitchen", got.Slug)

	_, err = svc.Upsert(context.Background(), domain.Category{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, repo.upserted, 1)
}

func TestList_NeverNil(t *testing.T) {
	list, err := New(&stubRepo{}).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
}
