package catalog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storefront.GO/api"
	"storefront.GO/config"
	catalogRepo "storefront.GO/model/repository/catalog"
	catalogService "storefront.GO/service/catalog"
)

func init() {
	api.RegisterModule(RegisterCatalogRoutes)
}

// parseFilterSpec builds the engine's filter spec from the listing query
// params the UI derives from the URL (category, search, min_price, max_price,
// in_stock, sort).
func parseFilterSpec(c echo.Context) catalogService.FilterSpec {
	spec := catalogService.FilterSpec{
		Sort:      catalogService.ParseSortKey(c.QueryParam("sort")),
		MatchRule: catalogService.MatchListing,
	}
	if v := c.QueryParam("category"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			cat := uint(id)
			spec.CategoryID = &cat
		}
	}
	if v := c.QueryParam("search"); v != "" {
		spec.Search = &v
		spec.MatchRule = catalogService.MatchSearchBar
	}
	if v := c.QueryParam("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			spec.MinPrice = &f
		}
	}
	if v := c.QueryParam("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			spec.MaxPrice = &f
		}
	}
	spec.InStockOnly = c.QueryParam("in_stock") == "true"
	return spec
}

func parsePaging(c echo.Context) (page, size int) {
	config.LoadAppConfig()
	page = 1
	size = config.AppConfig.DefaultPageSize
	if v := c.QueryParam("p"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && config.AppConfig.AllowedPageSize(n) {
			size = n
		}
	}
	return page, size
}

func RegisterCatalogRoutes(apiGroup *echo.Group, db *gorm.DB) {
	svc := catalogService.GetService(db)
	g := apiGroup.Group("/catalog")

	// GET /api/catalog/products – filtered, sorted, paginated listing
	g.GET("/products", func(c echo.Context) error {
		start := time.Now()
		page, size := parsePaging(c)
		res := svc.Query(parseFilterSpec(c), page, size)
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
		return c.JSON(http.StatusOK, echo.Map{
			"products":     res.Items,
			"page_info":    res.PageInfo,
			"page_numbers": catalogService.PageNumbers(res.PageInfo.CurrentPage, res.PageInfo.TotalPages),
		})
	})

	// GET /api/catalog/products/:id
	g.GET("/products/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		p, ok := svc.ProductByID(uint(id))
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusOK, echo.Map{"product": p})
	})

	// GET /api/catalog/products/slug/:slug
	g.GET("/products/slug/:slug", func(c echo.Context) error {
		p, ok := svc.ProductBySlug(c.Param("slug"))
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusOK, echo.Map{"product": p})
	})

	// GET /api/catalog/categories
	g.GET("/categories", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"categories": svc.Categories()})
	})

	// GET /api/catalog/suggest?q=...&scope=header|listing – autocomplete.
	// Recomputed on every call: the engine is a pure in-memory scan, the
	// client debounces only the full result query, not suggestions.
	g.GET("/suggest", func(c echo.Context) error {
		scope := catalogService.ParseSuggestScope(c.QueryParam("scope"))
		items := svc.Suggest(c.QueryParam("q"), scope)
		if items == nil {
			items = []catalogService.Product{}
		}
		return c.JSON(http.StatusOK, echo.Map{"suggestions": items})
	})

	// GET /api/catalog/search?q=...&p=&limit= – full search-bar query.
	// Elasticsearch when configured, the in-memory engine otherwise.
	g.GET("/search", func(c echo.Context) error {
		q := c.QueryParam("q")
		if q == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "q required"})
		}
		page, size := parsePaging(c)
		res, err := catalogService.GetSearchService().Search(c.Request().Context(), svc, q, page, size)
		if err != nil {
			return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"products":     res.Items,
			"page_info":    res.PageInfo,
			"page_numbers": catalogService.PageNumbers(res.PageInfo.CurrentPage, res.PageInfo.TotalPages),
		})
	})

	// GET /api/catalog/stock?sku=XXX – lightweight stock probe
	g.GET("/stock", func(c echo.Context) error {
		sku := c.QueryParam("sku")
		if sku == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "sku required"})
		}
		inStock, qty, err := catalogRepo.GetProductRepository(db).StockBySKU(sku)
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown sku"})
		}
		return c.JSON(http.StatusOK, echo.Map{"sku": sku, "in_stock": inStock, "stock_qty": qty})
	})

	// POST /api/catalog/reload – rebuild the snapshot (static API key auth)
	g.POST("/reload", func(c echo.Context) error {
		if err := svc.Reload(); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "reloaded", "products": len(svc.Products())})
	})
}
