// Package models holds the GraphQL view types. Field names follow the schema;
// graphql-go matches them via UseFieldResolvers.
package models

import gql "github.com/graph-gophers/graphql-go"

type Product struct {
	ID               gql.ID      `json:"id"`
	Slug             string      `json:"slug"`
	SKU              string      `json:"sku"`
	Name             string      `json:"name"`
	Category         string      `json:"category"`
	CategoryID       gql.ID      `json:"categoryId"`
	Price            float64     `json:"price"`
	OriginalPrice    *float64    `json:"originalPrice,omitempty"`
	InStock          bool        `json:"inStock"`
	StockQty         *int32      `json:"stockQty,omitempty"`
	ShortDescription string      `json:"shortDescription"`
	Description      string      `json:"description"`
	Features         []string    `json:"features"`
	Specifications   []SpecEntry `json:"specifications"`
	Image            string      `json:"image"`
	Rating           *float64    `json:"rating,omitempty"`
	ReviewCount      *int32      `json:"reviewCount,omitempty"`
}

type SpecEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Category struct {
	ID           gql.ID `json:"id"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ProductCount int32  `json:"productCount"`
}

type PageInfo struct {
	CurrentPage int32 `json:"currentPage"`
	PageSize    int32 `json:"pageSize"`
	TotalPages  int32 `json:"totalPages"`
	TotalCount  int32 `json:"totalCount"`
}

type ProductList struct {
	Items       []*Product `json:"items"`
	PageInfo    *PageInfo  `json:"pageInfo"`
	PageNumbers []int32    `json:"pageNumbers"`
}
