package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering of a filtered product list.
type SortKey string

const (
	SortNameAsc   SortKey = "name-asc"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	// SortNewest orders by descending entity ID: IDs are assigned in import
	// order, so the highest ID is the most recently added product. This is a
	// deliberate proxy for recency; there is no per-product publish date.
	SortNewest SortKey = "newest"
)

// ParseSortKey maps a query-param value to a SortKey, defaulting to name order.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortPriceAsc, SortPriceDesc, SortNewest, SortNameAsc:
		return SortKey(s)
	}
	return SortNameAsc
}

// MatchRule selects which product fields free-text search looks at. The
// storefront has two intentionally different rules: product listings match
// name/description/category, the search bar additionally matches SKU.
type MatchRule int

const (
	MatchListing MatchRule = iota
	MatchSearchBar
)

// FilterSpec is the set of active constraints for a catalog view. Nil fields
// are unset; any combination is legal (min > max just yields no matches).
type FilterSpec struct {
	CategoryID  *uint
	Search      *string
	MatchRule   MatchRule
	MinPrice    *float64
	MaxPrice    *float64
	InStockOnly bool
	Sort        SortKey
}

// Matches reports whether p satisfies every active predicate (AND semantics).
func (f *FilterSpec) Matches(p *Product) bool {
	if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
		return false
	}
	if f.InStockOnly && !p.InStock {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.Search != nil {
		q := strings.ToLower(strings.TrimSpace(*f.Search))
		if q != "" && !matchesText(p, q, f.MatchRule) {
			return false
		}
	}
	return true
}

func matchesText(p *Product, q string, rule MatchRule) bool {
	if contains(p.Name, q) || contains(p.Description, q) || contains(p.Category, q) {
		return true
	}
	if rule == MatchSearchBar && contains(p.SKU, q) {
		return true
	}
	return false
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

// nameCollator compares product names locale-aware. A collator is not safe
// for concurrent use, so Filter builds one per sort.
func nameCollator() *collate.Collator {
	return collate.New(language.English)
}

// Filter returns the products matching spec, fully sorted by spec.Sort.
// The sort is stable: ties keep catalog (snapshot) order.
func Filter(products []Product, spec FilterSpec) []Product {
	out := make([]Product, 0, len(products))
	for i := range products {
		if spec.Matches(&products[i]) {
			out = append(out, products[i])
		}
	}
	sortProducts(out, spec.Sort)
	return out
}

func sortProducts(items []Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price < items[j].Price })
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price > items[j].Price })
	case SortNewest:
		sort.SliceStable(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	default: // SortNameAsc
		cl := nameCollator()
		sort.SliceStable(items, func(i, j int) bool {
			return cl.CompareString(items[i].Name, items[j].Name) < 0
		})
	}
}

// PageInfo describes one page of a filtered result.
type PageInfo struct {
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
	TotalPages  int `json:"total_pages"`
	TotalCount  int `json:"total_count"`
}

// Result is a filtered, sorted, paginated catalog view.
type Result struct {
	Items    []Product `json:"items"`
	PageInfo PageInfo  `json:"page_info"`
}

// Paginate slices items into the requested 1-based page. Out-of-range pages
// yield an empty page, never an error.
func Paginate(items []Product, currentPage, pageSize int) Result {
	if pageSize <= 0 {
		pageSize = 12
	}
	if currentPage <= 0 {
		currentPage = 1
	}
	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	start := (currentPage - 1) * pageSize
	end := start + pageSize
	page := []Product{}
	if start < total {
		if end > total {
			end = total
		}
		page = items[start:end]
	}
	return Result{
		Items: page,
		PageInfo: PageInfo{
			CurrentPage: currentPage,
			PageSize:    pageSize,
			TotalPages:  totalPages,
			TotalCount:  total,
		},
	}
}
