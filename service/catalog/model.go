// Package catalog holds the in-memory catalog snapshot and the pure
// filter/sort/paginate and suggestion engines that back the storefront.
package catalog

import (
	"encoding/json"

	catalogEntity "storefront.GO/model/entity/catalog"
)

// Product is the catalog view model the engines operate on. Built once per
// snapshot from the DB rows, with JSON columns decoded.
type Product struct {
	ID               uint              `json:"id"`
	Slug             string            `json:"slug"`
	Name             string            `json:"name"`
	SKU              string            `json:"sku"`
	CategoryID       uint              `json:"category_id"`
	Category         string            `json:"category"`
	Price            float64           `json:"price"`
	OriginalPrice    *float64          `json:"original_price,omitempty"`
	InStock          bool              `json:"in_stock"`
	StockQty         *int              `json:"stock_qty,omitempty"`
	ShortDescription string            `json:"short_description"`
	Description      string            `json:"description"`
	Features         []string          `json:"features,omitempty"`
	Specs            map[string]string `json:"specs,omitempty"`
	Image            string            `json:"image"`
	Rating           *float64          `json:"rating,omitempty"`
	ReviewCount      *int              `json:"review_count,omitempty"`
}

// HasDiscount reports whether the discount badge applies.
func (p *Product) HasDiscount() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice > p.Price
}

type Category struct {
	ID           uint   `json:"id"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ProductCount int    `json:"product_count"`
}

func productFromEntity(e *catalogEntity.Product, categoryName string) Product {
	p := Product{
		ID:               e.EntityID,
		Slug:             e.Slug,
		Name:             e.Name,
		SKU:              e.SKU,
		CategoryID:       e.CategoryID,
		Category:         categoryName,
		Price:            e.Price,
		OriginalPrice:    e.OriginalPrice,
		InStock:          e.InStock,
		StockQty:         e.StockQty,
		ShortDescription: e.ShortDescription,
		Description:      e.Description,
		Image:            e.Image,
		Rating:           e.Rating,
		ReviewCount:      e.ReviewCount,
	}
	// JSON columns decode tolerantly: bad data means no features/specs.
	if len(e.Features) > 0 {
		_ = json.Unmarshal(e.Features, &p.Features)
	}
	if len(e.Specs) > 0 {
		_ = json.Unmarshal(e.Specs, &p.Specs)
	}
	return p
}

func categoryFromEntity(e *catalogEntity.Category) Category {
	return Category{
		ID:           e.EntityID,
		Slug:         e.Slug,
		Name:         e.Name,
		Description:  e.Description,
		ProductCount: e.ProductCount,
	}
}
