package cart

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

// testCatalog builds a loaded catalog service once per test binary
// (repositories are process singletons, so one DB serves all tests).
func testCatalog(t *testing.T) *catalogService.Service {
	t.Helper()
	catalogOnce.Do(func() {
		tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("cart_test_%d.db", time.Now().UnixNano()))
		db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{SkipDefaultTransaction: true})
		if err != nil {
			catalogErr = err
			return
		}
		if err := db.AutoMigrate(&catalogEntity.Category{}, &catalogEntity.Product{}); err != nil {
			catalogErr = err
			return
		}
		db.Create(&catalogEntity.Category{EntityID: 1, Slug: "locks", Name: "Locks"})
		db.Create(&catalogEntity.Product{EntityID: 1, Slug: "lock-a", SKU: "L-A", Name: "Lock A", CategoryID: 1, Price: 100, InStock: true})
		db.Create(&catalogEntity.Product{EntityID: 2, Slug: "lock-b", SKU: "L-B", Name: "Lock B", CategoryID: 1, Price: 50, InStock: true})
		db.Create(&catalogEntity.Product{EntityID: 3, Slug: "lock-c", SKU: "L-C", Name: "Lock C", CategoryID: 1, Price: 25, InStock: false})
		catalogSvc = catalogService.NewService(db)
		catalogErr = catalogSvc.Reload()
	})
	if catalogErr != nil {
		t.Fatalf("test catalog: %v", catalogErr)
	}
	return catalogSvc
}

func testService(t *testing.T, maxItems, maxQty int) (*Service, kvstore.Store) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	return NewService(store, testCatalog(t), maxItems, maxQty), store
}

func TestCart_AddAndGet(t *testing.T) {
	svc, _ := testService(t, 50, 99)
	ctx := context.Background()

	if err := svc.Add(ctx, "s1", 1, 2); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Add(ctx, "s1", 2, 1); err != nil {
		t.Fatalf("Add: %v", err)
	}

	view := svc.Get(ctx, "s1")
	if len(view.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(view.Items))
	}
	if view.TotalItems != 3 {
		t.Errorf("total items = %d, want 3", view.TotalItems)
	}
	if view.TotalPrice != 250 {
		t.Errorf("total price = %v, want 250", view.TotalPrice)
	}
	if view.Items[0].RowTotal != 200 {
		t.Errorf("row total = %v, want 200", view.Items[0].RowTotal)
	}
}

func TestCart_AddSameProduct_MergesQuantity(t *testing.T) {
	svc, _ := testService(t, 50, 99)
	ctx := context.Background()

	svc.Add(ctx, "s2", 1, 2)
	svc.Add(ctx, "s2", 1, 3)

	if qty := svc.ItemQuantity(ctx, "s2", 1); qty != 5 {
		t.Errorf("quantity = %d, want 5", qty)
	}
	if view := svc.Get(ctx, "s2"); len(view.Items) != 1 {
		t.Errorf("items = %d, want 1 merged entry", len(view.Items))
	}
}

func TestCart_Add_ClampsToMaxQty(t *testing.T) {
	svc, _ := testService(t, 50, 10)
	ctx := context.Background()

	svc.Add(ctx, "s3", 1, 8)
	svc.Add(ctx, "s3", 1, 8)

	if qty := svc.ItemQuantity(ctx, "s3", 1); qty != 10 {
		t.Errorf("quantity = %d, want clamp at 10", qty)
	}
}

func TestCart_Add_NonPositiveQuantityMeansOne(t *testing.T) {
	svc, _ := testService(t, 50, 99)
	ctx := context.Background()

	svc.Add(ctx, "s4", 1, 0)
	if qty := svc.ItemQuantity(ctx, "s4", 1); qty != 1 {
		t.Errorf("quantity = %d, want 1", qty)
	}
	svc.Add(ctx, "s4", 2, -7)
	if qty := svc.ItemQuantity(ctx, "s4", 2); qty != 1 {
		t.Errorf("quantity = %d, want 1", qty)
	}
}

func TestCart_Add_UnknownProduct(t *testing.T) {
	svc, _ := testService(t, 50, 99)
	if err := svc.Add(context.Background(), "s5", 9999, 1); err != ErrProductNotFound {
		t.Errorf("err = %v, want ErrProductNotFound", err)
	}
}

func TestCart_Add_DistinctItemCap(t *testing.T) {
	svc, _ := testService(t, 2, 99)
	ctx := context.Background()

	svc.Add(ctx, "s6", 1, 1)
	svc.Add(ctx, "s6", 2, 1)
	if err := svc.Add(ctx, "s6", 3, 1); err != ErrCartFull {
		t.Fatalf("err = %v, want ErrCartFull", err)
	}
	// Existing entries still accept quantity merges at the cap.
	if err := svc.Add(ctx, "s6", 1, 1); err != nil {
		t.Errorf("merge at cap: %v", err)
	}
	if qty := svc.ItemQuantity(ctx, "s6", 1); qty != 2 {
		t.Errorf("quantity = %d, want 2", qty)
	}
}

func TestCart_UpdateQuantity(t *testing.T) {
	svc, _ := testService(t, 50, 10)
	ctx := context.Background()

	svc.Add(ctx, "s7", 1, 1)
	svc.UpdateQuantity(ctx, "s7", 1, 7)
	if qty := svc.ItemQuantity(ctx, "s7", 1); qty != 7 {
		t.Errorf("quantity = %d, want 7", qty)
	}

	svc.UpdateQuantity(ctx, "s7", 1, 25)
	if qty := svc.ItemQuantity(ctx, "s7", 1); qty != 10 {
		t.Errorf("quantity = %d, want clamp at 10", qty)
	}

	svc.UpdateQuantity(ctx, "s7", 1, 0)
	if svc.IsInCart(ctx, "s7", 1) {
		t.Error("zero quantity should remove the entry")
	}
}

func TestCart_RemoveAndClear(t *testing.T) {
	svc, _ := testService(t, 50, 99)
	ctx := context.Background()

	svc.Add(ctx, "s8", 1, 1)
	svc.Add(ctx, "s8", 2, 1)
	svc.Remove(ctx, "s8", 1)
	if svc.IsInCart(ctx, "s8", 1) {
		t.Error("product 1 still in cart after Remove")
	}
	if !svc.IsInCart(ctx, "s8", 2) {
		t.Error("product 2 should remain")
	}

	svc.Clear(ctx, "s8")
	if view := svc.Get(ctx, "s8"); len(view.Items) != 0 {
		t.Errorf("items after clear = %d, want 0", len(view.Items))
	}
}

func TestCart_SessionsAreIsolated(t *testing.T) {
	svc, _ := testService(t, 50, 99)
	ctx := context.Background()

	svc.Add(ctx, "alice", 1, 1)
	if svc.IsInCart(ctx, "bob", 1) {
		t.Error("bob sees alice's cart")
	}
}

func TestCart_CorruptStoredState_StartsEmpty(t *testing.T) {
	svc, store := testService(t, 50, 99)
	ctx := context.Background()

	store.Set(ctx, "cart:s9", []byte("{definitely not a cart"), 0)
	view := svc.Get(ctx, "s9")
	if len(view.Items) != 0 {
		t.Errorf("items = %d, want 0 from corrupt state", len(view.Items))
	}
	// And the session is usable again.
	if err := svc.Add(ctx, "s9", 1, 1); err != nil {
		t.Errorf("Add after corrupt state: %v", err)
	}
}

func TestCart_StaleProduct_SkippedInView(t *testing.T) {
	svc, store := testService(t, 50, 99)
	ctx := context.Background()

	store.Set(ctx, "cart:s10", []byte(`[{"product_id":1,"quantity":1},{"product_id":8888,"quantity":4}]`), 0)
	view := svc.Get(ctx, "s10")
	if len(view.Items) != 1 {
		t.Fatalf("items = %d, want 1 (stale entry skipped)", len(view.Items))
	}
	if view.TotalItems != 1 {
		t.Errorf("total items = %d, want 1", view.TotalItems)
	}
}
