package favourites

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"storefront.GO/core/kvstore"
	catalogEntity "storefront.GO/model/entity/catalog"
	catalogService "storefront.GO/service/catalog"
)

var (
	catalogOnce sync.Once
	catalogSvc  *catalogService.Service
	catalogErr  error
)

func testCatalog(t *testing.T) *catalogService.Service {
	t.Helper()
	catalogOnce.Do(func() {
		tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("favourites_test_%d.db", time.Now().UnixNano()))
		db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{SkipDefaultTransaction: true})
		if err != nil {
			catalogErr = err
			return
		}
		if err := db.AutoMigrate(&catalogEntity.Category{}, &catalogEntity.Product{}); err != nil {
			catalogErr = err
			return
		}
		db.Create(&catalogEntity.Category{EntityID: 1, Slug: "readers", Name: "Readers"})
		db.Create(&catalogEntity.Product{EntityID: 1, Slug: "wr-a", SKU: "WR-A", Name: "Reader A", CategoryID: 1, Price: 300, InStock: true})
		db.Create(&catalogEntity.Product{EntityID: 2, Slug: "wr-b", SKU: "WR-B", Name: "Reader B", CategoryID: 1, Price: 350, InStock: true})
		catalogSvc = catalogService.NewService(db)
		catalogErr = catalogSvc.Reload()
	})
	if catalogErr != nil {
		t.Fatalf("test catalog: %v", catalogErr)
	}
	return catalogSvc
}

func testService(t *testing.T) (*Service, kvstore.Store) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	return NewService(store, testCatalog(t)), store
}

func TestFavourites_AddIsIdempotent(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	svc.Add(ctx, "s1", 1)
	svc.Add(ctx, "s1", 1)

	if n := svc.Count(ctx, "s1"); n != 1 {
		t.Errorf("count = %d, want 1 after duplicate add", n)
	}
	if !svc.Contains(ctx, "s1", 1) {
		t.Error("product 1 should be a favourite")
	}
}

func TestFavourites_Toggle(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	on, err := svc.Toggle(ctx, "s2", 1)
	if err != nil || !on {
		t.Fatalf("first toggle = %v, %v, want true", on, err)
	}
	off, err := svc.Toggle(ctx, "s2", 1)
	if err != nil || off {
		t.Fatalf("second toggle = %v, %v, want false", off, err)
	}
	if svc.Contains(ctx, "s2", 1) {
		t.Error("product should be gone after toggle off")
	}
}

func TestFavourites_RemoveAbsentIsNoop(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	if err := svc.Remove(ctx, "s3", 42); err != nil {
		t.Errorf("Remove absent: %v", err)
	}
	if n := svc.Count(ctx, "s3"); n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
}

func TestFavourites_Clear(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	svc.Add(ctx, "s4", 1)
	svc.Add(ctx, "s4", 2)
	svc.Clear(ctx, "s4")

	if n := svc.Count(ctx, "s4"); n != 0 {
		t.Errorf("count after clear = %d, want 0", n)
	}
}

func TestFavourites_List_SkipsStaleIDs(t *testing.T) {
	svc, store := testService(t)
	ctx := context.Background()

	store.Set(ctx, "favourites:s5", []byte(`[2,7777,1]`), 0)
	got := svc.List(ctx, "s5")
	if len(got) != 2 {
		t.Fatalf("hydrated = %d products, want 2", len(got))
	}
	// Insertion order preserved for the surviving IDs.
	if got[0].Slug != "wr-b" || got[1].Slug != "wr-a" {
		t.Errorf("list = [%s %s]", got[0].Slug, got[1].Slug)
	}
}

func TestFavourites_CorruptStoredState_StartsEmpty(t *testing.T) {
	svc, store := testService(t)
	ctx := context.Background()

	store.Set(ctx, "favourites:s6", []byte("[1,2"), 0)
	if n := svc.Count(ctx, "s6"); n != 0 {
		t.Errorf("count = %d, want 0 from corrupt state", n)
	}
	if err := svc.Add(ctx, "s6", 1); err != nil {
		t.Errorf("Add after corrupt state: %v", err)
	}
}

func TestFavourites_SessionsAreIsolated(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	svc.Add(ctx, "alice", 1)
	if svc.Contains(ctx, "bob", 1) {
		t.Error("bob sees alice's favourites")
	}
}
