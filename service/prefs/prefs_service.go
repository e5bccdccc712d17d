// Package prefs stores per-session UI preferences (catalog view mode and
// items-per-page), validated against the configured enums.
package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"storefront.GO/config"
	"storefront.GO/core/kvstore"
)

var ErrInvalidPreference = errors.New("prefs: invalid preference value")

// ViewMode is how the product listing renders.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// Preferences is the stored per-session record.
type Preferences struct {
	ViewMode     ViewMode `json:"view_mode"`
	ItemsPerPage int      `json:"items_per_page"`
}

type Service struct {
	store kvstore.Store
}

var (
	serviceInstance *Service
	serviceOnce     sync.Once
)

func GetService() *Service {
	serviceOnce.Do(func() {
		serviceInstance = NewService(kvstore.Default())
	})
	return serviceInstance
}

func NewService(store kvstore.Store) *Service {
	return &Service{store: store}
}

func key(sessionID string) string {
	return "prefs:" + sessionID
}

func defaults() Preferences {
	config.LoadAppConfig()
	return Preferences{ViewMode: ViewGrid, ItemsPerPage: config.AppConfig.DefaultPageSize}
}

// Get returns the stored preferences, falling back to defaults when absent
// or corrupt.
func (s *Service) Get(ctx context.Context, sessionID string) Preferences {
	data, err := s.store.Get(ctx, key(sessionID))
	if err != nil {
		return defaults()
	}
	var p Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		log.Printf("prefs: corrupt stored preferences for %s, using defaults: %v", sessionID, err)
		return defaults()
	}
	return p
}

// Set validates and persists the preferences.
func (s *Service) Set(ctx context.Context, sessionID string, p Preferences) error {
	config.LoadAppConfig()
	if p.ViewMode != ViewGrid && p.ViewMode != ViewList {
		return ErrInvalidPreference
	}
	if !config.AppConfig.AllowedPageSize(p.ItemsPerPage) {
		return ErrInvalidPreference
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, key(sessionID), data, 0)
}
