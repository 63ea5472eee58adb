package category

import (
	"context"
	"strings"

	"ecoshop/internal/domain"
	"ecoshop/internal/repository/category"
)

type Service struct {
	repo category.Repository
}

func New(repo category.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Category{}
	}
	return list, nil
}

// Upsert creates or updates a category by name, deriving the slug when empty.
func (s *Service) Upsert(ctx context.Context, c domain.Category) (*domain.Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, domain.Invalid("name", "category name is required")
	}
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	return s.repo.Upsert(ctx, c)
}

// Slugify lowercases name and joins its alphanumeric runs with dashes.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
