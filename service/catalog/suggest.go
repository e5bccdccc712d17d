package catalog

import "strings"

const (
	// SuggestLimit caps the autocomplete dropdown.
	SuggestLimit = 6
	// SuggestMinLen is the input length below which no suggestions are
	// computed, to avoid overly broad matches.
	SuggestMinLen = 2
)

// SuggestScope selects the suggestion match rule. The header search bar
// matches name/category/short description; the product-list search bar
// matches name/category/SKU.
type SuggestScope int

const (
	SuggestHeader SuggestScope = iota
	SuggestListing
)

// ParseSuggestScope maps a query-param value to a scope.
func ParseSuggestScope(s string) SuggestScope {
	if s == "listing" {
		return SuggestListing
	}
	return SuggestHeader
}

// Suggest returns up to SuggestLimit products matching the partial query.
// Products are scanned in catalog order; no ranking beyond position.
func Suggest(products []Product, query string, scope SuggestScope) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) < SuggestMinLen {
		return nil
	}
	var out []Product
	for i := range products {
		if suggestMatch(&products[i], q, scope) {
			out = append(out, products[i])
			if len(out) == SuggestLimit {
				break
			}
		}
	}
	return out
}

func suggestMatch(p *Product, q string, scope SuggestScope) bool {
	if contains(p.Name, q) || contains(p.Category, q) {
		return true
	}
	switch scope {
	case SuggestListing:
		return contains(p.SKU, q)
	default:
		return contains(p.ShortDescription, q)
	}
}

// Cursor tracks the highlighted suggestion for keyboard navigation. Down/Up
// clamp at the list bounds; the cursor never wraps. (The two dropdowns in the
// original storefront disagreed on wrapping — clamping is used for both here.)
type Cursor struct {
	index  int
	length int
}

// NewCursor returns a cursor over a list of the given length with nothing
// highlighted.
func NewCursor(length int) *Cursor {
	return &Cursor{index: -1, length: length}
}

// Reset clears the highlight and adopts a new list length.
func (c *Cursor) Reset(length int) {
	c.index = -1
	c.length = length
}

// Down moves the highlight one row down, clamped to the last row.
func (c *Cursor) Down() int {
	if c.length == 0 {
		return -1
	}
	if c.index < c.length-1 {
		c.index++
	}
	return c.index
}

// Up moves the highlight one row up, clamped to the first row.
func (c *Cursor) Up() int {
	if c.length == 0 {
		return -1
	}
	if c.index > 0 {
		c.index--
	} else {
		c.index = 0
	}
	return c.index
}

// Index returns the highlighted row, or -1 when nothing is highlighted.
func (c *Cursor) Index() int {
	return c.index
}
