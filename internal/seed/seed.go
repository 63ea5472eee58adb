package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type categorySeed struct {
	Name string
	Slug string
}

type productSeed struct {
	Name        string
	Price       string
	Category    string
	Image       string
	Description string
}

var categories = []categorySeed{
	{Name: "Personal Care", Slug: "personal-care"},
	{Name: "Kitchen", Slug: "kitchen"},
	{Name: "Bags", Slug: "bags"},
	{Name: "Home", Slug: "home"},
}

var products = []productSeed{
	{
		Name:        "Bamboo Toothbrush",
		Price:       "120.00",
		Category:    "Personal Care",
		Image:       "https://images.ecoshop.local/bamboo-toothbrush.jpg",
		Description: "Biodegradable bamboo handle with charcoal bristles",
	},
	{
		Name:        "Shampoo Bar",
		Price:       "180.00",
		Category:    "Personal Care",
		Image:       "https://images.ecoshop.local/shampoo-bar.jpg",
		Description: "Plastic-free solid shampoo, lasts around 80 washes",
	},
	{
		Name:        "Beeswax Food Wraps",
		Price:       "349.00",
		Category:    "Kitchen",
		Image:       "https://images.ecoshop.local/beeswax-wraps.jpg",
		Description: "Set of three reusable wraps replacing cling film",
	},
	{
		Name:        "Steel Water Bottle",
		Price:       "899.00",
		Category:    "Kitchen",
		Image:       "https://images.ecoshop.local/steel-bottle.jpg",
		Description: "Double-walled stainless steel, 750 ml",
	},
	{
		Name:        "Organic Cotton Tote",
		Price:       "250.00",
		Category:    "Bags",
		Image:       "https://images.ecoshop.local/cotton-tote.jpg",
		Description: "Heavy organic cotton shopping bag",
	},
	{
		Name:        "Solar Garden Lamp",
		Price:       "1299.00",
		Category:    "Home",
		Image:       "https://images.ecoshop.local/solar-lamp.jpg",
		Description: "Charges by day, lights the path by night",
	},
}

// Apply inserts demo catalog data for manual testing. It is idempotent via ON
// CONFLICT; existing product prices are left untouched.
func Apply(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, c := range categories {
		if err := upsertCategory(ctx, pool, c); err != nil {
			return fmt.Errorf("upsert category %s: %w", c.Name, err)
		}
	}

	inserted := 0
	for _, p := range products {
		ok, err := insertProduct(ctx, pool, p)
		if err != nil {
			return fmt.Errorf("insert product %s: %w", p.Name, err)
		}
		if ok {
			inserted++
		}
	}

	logger.Info("seed applied",
		zap.Int("categories", len(categories)),
		zap.Int("products_inserted", inserted),
		zap.Int("products_existing", len(products)-inserted))
	return nil
}

func upsertCategory(ctx context.Context, pool *pgxpool.Pool, c categorySeed) error {
	const q = `
INSERT INTO categories (name, slug)
VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET slug = EXCLUDED.slug
`
	_, err := pool.Exec(ctx, q, c.Name, c.Slug)
	return err
}

func insertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) (bool, error) {
	const q = `
INSERT INTO products (name, price, category, image, description)
VALUES ($1, $2::numeric, $3, $4, $5)
ON CONFLICT (name) DO NOTHING
`
	tag, err := pool.Exec(ctx, q, p.Name, p.Price, p.Category, p.Image, p.Description)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
