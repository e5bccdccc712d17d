// Package favourites implements the per-session favourite-product set.
// Same persistence contract as the cart: full set written on every change,
// corrupt stored JSON hydrates to an empty set.
package favourites

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"gorm.io/gorm"

	"storefront.GO/core/kvstore"
	catalogService "storefront.GO/service/catalog"
)

// Service manages favourite sets keyed by session ID.
type Service struct {
	store   kvstore.Store
	catalog *catalogService.Service
}

var (
	serviceInstance *Service
	serviceOnce     sync.Once
)

// GetService returns the singleton favourites service for the given DB.
func GetService(db *gorm.DB) *Service {
	serviceOnce.Do(func() {
		serviceInstance = NewService(kvstore.Default(), catalogService.GetService(db))
	})
	return serviceInstance
}

func NewService(store kvstore.Store, catalog *catalogService.Service) *Service {
	return &Service{store: store, catalog: catalog}
}

func key(sessionID string) string {
	return "favourites:" + sessionID
}

func (s *Service) load(ctx context.Context, sessionID string) []uint {
	data, err := s.store.Get(ctx, key(sessionID))
	if err != nil {
		if err != kvstore.ErrNotFound {
			log.Printf("favourites: load %s: %v", sessionID, err)
		}
		return nil
	}
	var ids []uint
	if err := json.Unmarshal(data, &ids); err != nil {
		log.Printf("favourites: corrupt stored set for %s, starting empty: %v", sessionID, err)
		return nil
	}
	return ids
}

func (s *Service) save(ctx context.Context, sessionID string, ids []uint) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, key(sessionID), data, 0)
}

// Add puts a product into the set; duplicates are no-ops.
func (s *Service) Add(ctx context.Context, sessionID string, productID uint) error {
	ids := s.load(ctx, sessionID)
	for _, id := range ids {
		if id == productID {
			return nil
		}
	}
	return s.save(ctx, sessionID, append(ids, productID))
}

// Remove takes a product out of the set; no-op when absent.
func (s *Service) Remove(ctx context.Context, sessionID string, productID uint) error {
	ids := s.load(ctx, sessionID)
	for i, id := range ids {
		if id == productID {
			return s.save(ctx, sessionID, append(ids[:i], ids[i+1:]...))
		}
	}
	return nil
}

// Toggle adds the product if absent, removes it if present. Returns the new
// membership state.
func (s *Service) Toggle(ctx context.Context, sessionID string, productID uint) (bool, error) {
	if s.Contains(ctx, sessionID, productID) {
		return false, s.Remove(ctx, sessionID, productID)
	}
	return true, s.Add(ctx, sessionID, productID)
}

// Clear empties the set.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, key(sessionID))
}

// Contains reports set membership.
func (s *Service) Contains(ctx context.Context, sessionID string, productID uint) bool {
	for _, id := range s.load(ctx, sessionID) {
		if id == productID {
			return true
		}
	}
	return false
}

// Count returns the number of favourites.
func (s *Service) Count(ctx context.Context, sessionID string) int {
	return len(s.load(ctx, sessionID))
}

// List hydrates the set against the catalog snapshot; stale IDs are skipped.
func (s *Service) List(ctx context.Context, sessionID string) []catalogService.Product {
	ids := s.load(ctx, sessionID)
	out := make([]catalogService.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.catalog.ProductByID(id); ok {
			out = append(out, p)
		}
	}
	return out
}
