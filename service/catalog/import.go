package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/mitchellh/mapstructure"
	"gorm.io/gorm"

	catalogEntity "storefront.GO/model/entity/catalog"
	catalogRepo "storefront.GO/model/repository/catalog"
)

// ImportOptions configures a fixture import run.
type ImportOptions struct {
	BatchSize int
}

// ImportResult holds counters and timing from an import run.
type ImportResult struct {
	TotalRows   int
	Imported    int
	Skipped     int
	Warnings    []string
	ProcessTime time.Duration
	DBTime      time.Duration
	TotalTime   time.Duration
}

// fixtureProduct mirrors the camelCase product shape of the JSON fixtures.
type fixtureProduct struct {
	ID               uint              `mapstructure:"id"`
	Slug             string            `mapstructure:"slug"`
	Name             string            `mapstructure:"name"`
	SKU              string            `mapstructure:"sku"`
	Category         string            `mapstructure:"category"`
	CategoryID       uint              `mapstructure:"categoryId"`
	Price            float64           `mapstructure:"price"`
	OriginalPrice    *float64          `mapstructure:"originalPrice"`
	InStock          bool              `mapstructure:"inStock"`
	StockCount       *int              `mapstructure:"stockCount"`
	Description      string            `mapstructure:"description"`
	ShortDescription string            `mapstructure:"shortDescription"`
	Features         []string          `mapstructure:"features"`
	Specifications   map[string]string `mapstructure:"specifications"`
	Image            string            `mapstructure:"image"`
	Rating           *float64          `mapstructure:"rating"`
	ReviewCount      *int              `mapstructure:"reviewCount"`
}

type fixtureCategory struct {
	ID           uint   `mapstructure:"id"`
	Slug         string `mapstructure:"slug"`
	Name         string `mapstructure:"name"`
	Description  string `mapstructure:"description"`
	ProductCount int    `mapstructure:"productCount"`
}

func decodeRows(r io.Reader) ([]map[string]interface{}, error) {
	var rows []map[string]interface{}
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode fixture JSON: %w", err)
	}
	return rows, nil
}

// decodeRow maps a raw fixture row onto out, tolerating numeric type drift
// (JSON numbers arrive as float64).
func decodeRow(row map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(row)
}

// ImportProducts reads a JSON fixture array from r and upserts products by slug.
func ImportProducts(db *gorm.DB, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	startTotal := time.Now()
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}

	rows, err := decodeRows(r)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{TotalRows: len(rows)}
	startProcess := time.Now()

	seenSlugs := make(map[string]bool, len(rows))
	entities := make([]catalogEntity.Product, 0, len(rows))
	for i, row := range rows {
		var fp fixtureProduct
		if err := decodeRow(row, &fp); err != nil {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: %v, skipping", i+1, err))
			continue
		}
		if fp.Slug == "" || fp.Name == "" || fp.SKU == "" {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: slug, name and sku are required, skipping", i+1))
			continue
		}
		if fp.Price < 0 {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d (%s): negative price, skipping", i+1, fp.Slug))
			continue
		}
		if seenSlugs[fp.Slug] {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: duplicate slug %q, skipping", i+1, fp.Slug))
			continue
		}
		seenSlugs[fp.Slug] = true

		e := catalogEntity.Product{
			EntityID:         fp.ID,
			Slug:             fp.Slug,
			SKU:              fp.SKU,
			Name:             fp.Name,
			CategoryID:       fp.CategoryID,
			Price:            fp.Price,
			OriginalPrice:    fp.OriginalPrice,
			InStock:          fp.InStock,
			StockQty:         fp.StockCount,
			ShortDescription: fp.ShortDescription,
			Description:      fp.Description,
			Image:            fp.Image,
			Rating:           fp.Rating,
			ReviewCount:      fp.ReviewCount,
		}
		if len(fp.Features) > 0 {
			e.Features, _ = json.Marshal(fp.Features)
		}
		if len(fp.Specifications) > 0 {
			e.Specs, _ = json.Marshal(fp.Specifications)
		}
		entities = append(entities, e)
	}
	result.ProcessTime = time.Since(startProcess)

	startDB := time.Now()
	if err := catalogRepo.GetProductRepository(db).UpsertBatch(entities, opts.BatchSize); err != nil {
		return nil, fmt.Errorf("upsert products: %w", err)
	}
	result.DBTime = time.Since(startDB)
	result.Imported = len(entities)
	result.TotalTime = time.Since(startTotal)
	return result, nil
}

// ImportCategories reads a JSON fixture array from r and upserts categories by
// slug, then refreshes per-category product counts.
func ImportCategories(db *gorm.DB, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	startTotal := time.Now()
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}

	rows, err := decodeRows(r)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{TotalRows: len(rows)}
	startProcess := time.Now()

	entities := make([]catalogEntity.Category, 0, len(rows))
	for i, row := range rows {
		var fc fixtureCategory
		if err := decodeRow(row, &fc); err != nil {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: %v, skipping", i+1, err))
			continue
		}
		if fc.Slug == "" || fc.Name == "" {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: slug and name are required, skipping", i+1))
			continue
		}
		entities = append(entities, catalogEntity.Category{
			EntityID:     fc.ID,
			Slug:         fc.Slug,
			Name:         fc.Name,
			Description:  fc.Description,
			ProductCount: fc.ProductCount,
		})
	}
	result.ProcessTime = time.Since(startProcess)

	startDB := time.Now()
	repo := catalogRepo.GetCategoryRepository(db)
	if err := repo.UpsertBatch(entities, opts.BatchSize); err != nil {
		return nil, fmt.Errorf("upsert categories: %w", err)
	}
	if err := repo.RecountProducts(); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("recount products: %v", err))
	}
	result.DBTime = time.Since(startDB)
	result.Imported = len(entities)
	result.TotalTime = time.Since(startTotal)
	return result, nil
}
