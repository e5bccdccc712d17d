package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	catalogEntity "storefront.GO/model/entity/catalog"
	catalogService "storefront.GO/service/catalog"
)

var (
	setupOnce sync.Once
	testEcho  *echo.Echo
	setupErr  error
)

// testServer wires the catalog routes once per binary. The catalog service is
// a process singleton, so every test shares the same seeded snapshot.
func testServer(t *testing.T) *echo.Echo {
	t.Helper()
	setupOnce.Do(func() {
		tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("catalog_api_test_%d.db", time.Now().UnixNano()))
		db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{SkipDefaultTransaction: true})
		if err != nil {
			setupErr = err
			return
		}
		if err := db.AutoMigrate(&catalogEntity.Category{}, &catalogEntity.Product{}); err != nil {
			setupErr = err
			return
		}
		qty := 4
		db.Create(&catalogEntity.Category{EntityID: 1, Slug: "electronic-locks", Name: "Electronic Locks"})
		db.Create(&catalogEntity.Category{EntityID: 2, Slug: "wall-readers", Name: "Wall Readers"})
		db.Create(&catalogEntity.Product{EntityID: 1, Slug: "xs4-one", SKU: "XS4-ONE", Name: "XS4 One Electronic Lock", CategoryID: 1, Price: 389, InStock: true, StockQty: &qty})
		db.Create(&catalogEntity.Product{EntityID: 2, Slug: "xs4-gate", SKU: "XS4-GATE", Name: "XS4 Gate Lock", CategoryID: 1, Price: 419, InStock: false})
		db.Create(&catalogEntity.Product{EntityID: 3, Slug: "wr5-reader", SKU: "WR5-ON", Name: "WR5 Online Wall Reader", CategoryID: 2, Price: 459, InStock: true})

		testEcho = echo.New()
		RegisterCatalogRoutes(testEcho.Group("/api"), db)
		setupErr = catalogService.GetService(db).Reload()
	})
	if setupErr != nil {
		t.Fatalf("test server: %v", setupErr)
	}
	return testEcho
}

func get(t *testing.T, e *echo.Echo, target string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var out map[string]interface{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode %s: %v (body %s)", target, err, rec.Body.String())
		}
	}
	return rec, out
}

func TestProductsEndpoint_Listing(t *testing.T) {
	e := testServer(t)
	rec, body := get(t, e, "/api/catalog/products")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-Duration-ms") == "" {
		t.Error("duration header missing")
	}
	products := body["products"].([]interface{})
	if len(products) != 3 {
		t.Errorf("products = %d, want 3", len(products))
	}
	info := body["page_info"].(map[string]interface{})
	if info["total_count"].(float64) != 3 {
		t.Errorf("total_count = %v", info["total_count"])
	}
}

func TestProductsEndpoint_CategoryFilter(t *testing.T) {
	e := testServer(t)
	_, body := get(t, e, "/api/catalog/products?category=2")
	products := body["products"].([]interface{})
	if len(products) != 1 {
		t.Fatalf("products = %d, want 1", len(products))
	}
	p := products[0].(map[string]interface{})
	if p["slug"] != "wr5-reader" {
		t.Errorf("slug = %v", p["slug"])
	}
}

func TestProductsEndpoint_SearchMatchesSKU(t *testing.T) {
	e := testServer(t)
	_, body := get(t, e, "/api/catalog/products?search=WR5-ON")
	products := body["products"].([]interface{})
	if len(products) != 1 {
		t.Errorf("SKU search products = %d, want 1", len(products))
	}
}

func TestProductsEndpoint_InStockAndSort(t *testing.T) {
	e := testServer(t)
	_, body := get(t, e, "/api/catalog/products?in_stock=true&sort=price-desc")
	products := body["products"].([]interface{})
	if len(products) != 2 {
		t.Fatalf("products = %d, want 2 in stock", len(products))
	}
	first := products[0].(map[string]interface{})
	if first["slug"] != "wr5-reader" {
		t.Errorf("first by price desc = %v", first["slug"])
	}
}

func TestProductsEndpoint_InvalidLimitFallsBack(t *testing.T) {
	e := testServer(t)
	_, body := get(t, e, "/api/catalog/products?limit=13")
	info := body["page_info"].(map[string]interface{})
	if info["page_size"].(float64) == 13 {
		t.Error("disallowed page size accepted")
	}
}

func TestProductByID(t *testing.T) {
	e := testServer(t)
	rec, body := get(t, e, "/api/catalog/products/1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	p := body["product"].(map[string]interface{})
	if p["sku"] != "XS4-ONE" {
		t.Errorf("sku = %v", p["sku"])
	}

	rec, _ = get(t, e, "/api/catalog/products/999")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing id status = %d, want 404", rec.Code)
	}
	rec, _ = get(t, e, "/api/catalog/products/abc")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", rec.Code)
	}
}

func TestProductBySlug(t *testing.T) {
	e := testServer(t)
	rec, _ := get(t, e, "/api/catalog/products/slug/xs4-gate")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	rec, _ = get(t, e, "/api/catalog/products/slug/ghost")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing slug status = %d, want 404", rec.Code)
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	e := testServer(t)
	rec, body := get(t, e, "/api/catalog/categories")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	cats := body["categories"].([]interface{})
	if len(cats) != 2 {
		t.Errorf("categories = %d, want 2", len(cats))
	}
}

func TestSuggestEndpoint(t *testing.T) {
	e := testServer(t)
	_, body := get(t, e, "/api/catalog/suggest?q=xs4")
	suggestions := body["suggestions"].([]interface{})
	if len(suggestions) != 2 {
		t.Errorf("suggestions = %d, want 2", len(suggestions))
	}

	// Below the minimum query length the endpoint returns an empty list.
	_, body = get(t, e, "/api/catalog/suggest?q=x")
	if len(body["suggestions"].([]interface{})) != 0 {
		t.Errorf("short query suggestions = %v, want empty", body["suggestions"])
	}
}

func TestSearchEndpoint_FallbackEngine(t *testing.T) {
	e := testServer(t)
	rec, body := get(t, e, "/api/catalog/search?q=gate")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	products := body["products"].([]interface{})
	if len(products) != 1 {
		t.Fatalf("products = %d, want 1", len(products))
	}
	if products[0].(map[string]interface{})["slug"] != "xs4-gate" {
		t.Errorf("slug = %v", products[0].(map[string]interface{})["slug"])
	}

	rec, _ = get(t, e, "/api/catalog/search")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing q status = %d, want 400", rec.Code)
	}
}

func TestStockEndpoint(t *testing.T) {
	e := testServer(t)
	rec, body := get(t, e, "/api/catalog/stock?sku=XS4-ONE")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["in_stock"] != true {
		t.Errorf("in_stock = %v", body["in_stock"])
	}
	if body["stock_qty"].(float64) != 4 {
		t.Errorf("stock_qty = %v", body["stock_qty"])
	}

	rec, _ = get(t, e, "/api/catalog/stock?sku=NOPE")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown sku status = %d, want 404", rec.Code)
	}
	rec, _ = get(t, e, "/api/catalog/stock")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing sku status = %d, want 400", rec.Code)
	}
}
