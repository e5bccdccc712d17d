package html

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storefront.GO/config"
	parts "storefront.GO/html/parts"
	catalogService "storefront.GO/service/catalog"
)

// RegisterCategoryHTMLRoutes registers the server-rendered category listing
// page. Filtering, sorting and paging read the same query params as the JSON
// API (sort, in_stock, p, limit).
func RegisterCategoryHTMLRoutes(e *echo.Echo, db *gorm.DB) {
	svc := catalogService.GetService(db)
	e.GET("/category/:slug", func(c echo.Context) error {
		cat, ok := svc.CategoryBySlug(c.Param("slug"))
		if !ok {
			return c.String(http.StatusNotFound, "Category not found")
		}

		spec := catalogService.FilterSpec{
			CategoryID:  &cat.ID,
			Sort:        catalogService.ParseSortKey(c.QueryParam("sort")),
			InStockOnly: c.QueryParam("in_stock") == "true",
			MatchRule:   catalogService.MatchListing,
		}
		page := 1
		if v := c.QueryParam("p"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				page = n
			}
		}
		limit := config.AppConfig.DefaultPageSize
		if v := c.QueryParam("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && config.AppConfig.AllowedPageSize(n) {
				limit = n
			}
		}

		res := svc.Query(spec, page, limit)
		prevPage := res.PageInfo.CurrentPage - 1
		if prevPage < 1 {
			prevPage = 1
		}
		nextPage := res.PageInfo.CurrentPage + 1
		if nextPage > res.PageInfo.TotalPages {
			nextPage = res.PageInfo.TotalPages
		}

		criticalCSS, err := parts.GetCriticalCSSCached()
		if err != nil {
			criticalCSS = ""
		}
		return c.Render(http.StatusOK, "category.html", map[string]interface{}{
			"Title":       cat.Name + " - " + config.AppConfig.AppName,
			"Category":    cat,
			"Products":    res.Items,
			"PageInfo":    res.PageInfo,
			"PageNumbers": catalogService.PageNumbers(res.PageInfo.CurrentPage, res.PageInfo.TotalPages),
			"Ellipsis":    catalogService.Ellipsis,
			"PrevPage":    prevPage,
			"NextPage":    nextPage,
			"Sort":        string(spec.Sort),
			"Limit":       limit,
			"MediaUrl":    config.AppConfig.MediaUrl,
			"CriticalCSS": template.CSS(criticalCSS),
		})
	})
}
