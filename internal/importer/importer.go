package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"ecoshop/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Kind string

const (
	KindProducts   Kind = "products"
	KindCategories Kind = "categories"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type CategoryWriter interface {
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
}

// CSVImporter reads catalog CSV files and upserts their rows by name.
//
// Product files carry name,price,category,image,description columns; every
// distinct category they mention is upserted too. Category files carry
// name and an optional slug.
type CSVImporter struct {
	reader       *csv.Reader
	productRepo  ProductWriter
	categoryRepo CategoryWriter
	logger       *zap.Logger
}

func NewCSVImporter(r io.Reader, products ProductWriter, categories CategoryWriter, logger *zap.Logger) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSVImporter{
		reader:       csvr,
		productRepo:  products,
		categoryRepo: categories,
		logger:       logger.Named("importer"),
	}
}

// DetectKind inspects the header row. Anything with a price column is a product file.
func DetectKind(r io.Reader) (Kind, error) {
	headers, err := csv.NewReader(r).Read()
	if err != nil {
		return "", fmt.Errorf("read headers: %w", err)
	}
	return kindOf(headerIndex(headers))
}

func kindOf(index map[string]int) (Kind, error) {
	if _, ok := index["name"]; !ok {
		return "", errors.New("missing name column")
	}
	if _, ok := index["price"]; ok {
		return KindProducts, nil
	}
	return KindCategories, nil
}

// Run imports every row and returns the number of rows written.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	kind, err := kindOf(index)
	if err != nil {
		return 0, err
	}
	if kind == KindProducts && i.productRepo == nil {
		return 0, errors.New("product file given but no product writer configured")
	}

	var (
		imported int
		seen     = map[string]struct{}{}
		line     = 1
	)
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if blank(record) {
			continue
		}

		switch kind {
		case KindProducts:
			p, err := parseProduct(record, index)
			if err != nil {
				return imported, fmt.Errorf("line %d: %w", line, err)
			}
			if err := i.ensureCategory(ctx, p.Category, seen); err != nil {
				return imported, fmt.Errorf("line %d: %w", line, err)
			}
			if _, err := i.productRepo.Upsert(ctx, p); err != nil {
				return imported, fmt.Errorf("line %d: upsert product %q: %w", line, p.Name, err)
			}
		case KindCategories:
			name := pick(record, index, "name")
			if name == "" {
				return imported, fmt.Errorf("line %d: missing name", line)
			}
			if err := i.upsertCategory(ctx, domain.Category{Name: name, Slug: pick(record, index, "slug")}); err != nil {
				return imported, fmt.Errorf("line %d: %w", line, err)
			}
		}
		imported++
	}

	i.logger.Info("import finished", zap.String("kind", string(kind)), zap.Int("rows", imported))
	return imported, nil
}

func (i *CSVImporter) ensureCategory(ctx context.Context, name string, seen map[string]struct{}) error {
	if name == "" || i.categoryRepo == nil {
		return nil
	}
	key := strings.ToLower(name)
	if _, ok := seen[key]; ok {
		return nil
	}
	seen[key] = struct{}{}
	return i.upsertCategory(ctx, domain.Category{Name: name})
}

func (i *CSVImporter) upsertCategory(ctx context.Context, c domain.Category) error {
	if i.categoryRepo == nil {
		return errors.New("category file given but no category writer configured")
	}
	if _, err := i.categoryRepo.Upsert(ctx, c); err != nil {
		return fmt.Errorf("upsert category %q: %w", c.Name, err)
	}
	return nil
}

func parseProduct(record []string, index map[string]int) (domain.Product, error) {
	name := pick(record, index, "name")
	if name == "" {
		return domain.Product{}, errors.New("missing name")
	}
	raw := pick(record, index, "price")
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %q: invalid price %q", name, raw)
	}
	if price.IsNegative() {
		return domain.Product{}, fmt.Errorf("product %q: negative price %s", name, raw)
	}
	return domain.Product{
		Name:        name,
		Price:       domain.NewMoney(price),
		Category:    pick(record, index, "category"),
		Image:       pick(record, index, "image"),
		Description: pick(record, index, "description"),
	}, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	return idx
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
