// Package cart implements the per-session shopping cart container. Every
// mutation persists the whole entry list under the session's key; hydration
// tolerates corrupt stored JSON by starting empty (logged, never surfaced).
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"gorm.io/gorm"

	"storefront.GO/config"
	"storefront.GO/core/kvstore"
	catalogService "storefront.GO/service/catalog"
)

var (
	// ErrCartFull is returned when the distinct-entry cap is reached. The
	// original storefront dropped the add silently; the server surfaces it.
	ErrCartFull = errors.New("cart: distinct item limit reached")
	// ErrProductNotFound is returned when the product ID is not in the catalog.
	ErrProductNotFound = errors.New("cart: product not found")
)

// Item is one persisted cart entry: a product reference plus quantity.
type Item struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// ItemView is a hydrated cart entry for API/page rendering.
type ItemView struct {
	Product  catalogService.Product `json:"product"`
	Quantity int                    `json:"quantity"`
	RowTotal float64                `json:"row_total"`
}

// View is the full cart with derived aggregates, recomputed on every read.
type View struct {
	Items      []ItemView `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice float64    `json:"total_price"`
}

// Service manages carts keyed by session ID.
type Service struct {
	store    kvstore.Store
	catalog  *catalogService.Service
	maxItems int
	maxQty   int
}

var (
	serviceInstance *Service
	serviceOnce     sync.Once
)

// GetService returns the singleton cart service for the given DB.
func GetService(db *gorm.DB) *Service {
	serviceOnce.Do(func() {
		config.LoadAppConfig()
		serviceInstance = NewService(kvstore.Default(), catalogService.GetService(db),
			config.AppConfig.CartMaxItems, config.AppConfig.CartMaxQty)
	})
	return serviceInstance
}

func NewService(store kvstore.Store, catalog *catalogService.Service, maxItems, maxQty int) *Service {
	if maxItems <= 0 {
		maxItems = 50
	}
	if maxQty <= 0 {
		maxQty = 99
	}
	return &Service{store: store, catalog: catalog, maxItems: maxItems, maxQty: maxQty}
}

func key(sessionID string) string {
	return "cart:" + sessionID
}

// load hydrates the entry list for a session. Missing or corrupt state means
// an empty cart; storage failures never reach the caller as errors.
func (s *Service) load(ctx context.Context, sessionID string) []Item {
	data, err := s.store.Get(ctx, key(sessionID))
	if err != nil {
		if err != kvstore.ErrNotFound {
			log.Printf("cart: load %s: %v", sessionID, err)
		}
		return nil
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("cart: corrupt stored cart for %s, starting empty: %v", sessionID, err)
		return nil
	}
	return items
}

func (s *Service) save(ctx context.Context, sessionID string, items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("cart: encode: %w", err)
	}
	return s.store.Set(ctx, key(sessionID), data, 0)
}

// Add merges quantity into an existing entry (clamped to the per-item cap) or
// appends a new one. Returns ErrCartFull when the distinct-entry cap would be
// exceeded. A non-positive quantity counts as 1.
func (s *Service) Add(ctx context.Context, sessionID string, productID uint, quantity int) error {
	if _, ok := s.catalog.ProductByID(productID); !ok {
		return ErrProductNotFound
	}
	if quantity <= 0 {
		quantity = 1
	}
	items := s.load(ctx, sessionID)
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = clamp(items[i].Quantity+quantity, s.maxQty)
			return s.save(ctx, sessionID, items)
		}
	}
	if len(items) >= s.maxItems {
		log.Printf("cart: %s at distinct item cap (%d), add of product %d rejected", sessionID, s.maxItems, productID)
		return ErrCartFull
	}
	items = append(items, Item{ProductID: productID, Quantity: clamp(quantity, s.maxQty)})
	return s.save(ctx, sessionID, items)
}

// Remove deletes the entry if present; no-op otherwise.
func (s *Service) Remove(ctx context.Context, sessionID string, productID uint) error {
	items := s.load(ctx, sessionID)
	for i := range items {
		if items[i].ProductID == productID {
			items = append(items[:i], items[i+1:]...)
			return s.save(ctx, sessionID, items)
		}
	}
	return nil
}

// UpdateQuantity sets an entry's quantity directly, clamped to the per-item
// cap. A quantity <= 0 removes the entry.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, productID uint, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, sessionID, productID)
	}
	items := s.load(ctx, sessionID)
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = clamp(quantity, s.maxQty)
			return s.save(ctx, sessionID, items)
		}
	}
	return nil
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, key(sessionID))
}

// IsInCart reports whether the product has an entry.
func (s *Service) IsInCart(ctx context.Context, sessionID string, productID uint) bool {
	return s.ItemQuantity(ctx, sessionID, productID) > 0
}

// ItemQuantity returns the entry quantity, 0 when absent.
func (s *Service) ItemQuantity(ctx context.Context, sessionID string, productID uint) int {
	for _, item := range s.load(ctx, sessionID) {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

// Get hydrates the cart against the catalog snapshot and computes totals.
// Entries whose product has left the catalog are skipped (stale state).
func (s *Service) Get(ctx context.Context, sessionID string) View {
	items := s.load(ctx, sessionID)
	view := View{Items: []ItemView{}}
	for _, item := range items {
		p, ok := s.catalog.ProductByID(item.ProductID)
		if !ok {
			log.Printf("cart: %s references unknown product %d, skipping", sessionID, item.ProductID)
			continue
		}
		rowTotal := p.Price * float64(item.Quantity)
		view.Items = append(view.Items, ItemView{Product: p, Quantity: item.Quantity, RowTotal: rowTotal})
		view.TotalItems += item.Quantity
		view.TotalPrice += rowTotal
	}
	return view
}

func clamp(qty, max int) int {
	if qty > max {
		return max
	}
	return qty
}
