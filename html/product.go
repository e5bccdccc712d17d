package html

import (
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storefront.GO/config"
	parts "storefront.GO/html/parts"
	catalogService "storefront.GO/service/catalog"
)

// RegisterProductHTMLRoutes registers the server-rendered product detail page.
func RegisterProductHTMLRoutes(e *echo.Echo, db *gorm.DB) {
	svc := catalogService.GetService(db)
	e.GET("/product/:slug", func(c echo.Context) error {
		p, ok := svc.ProductBySlug(c.Param("slug"))
		if !ok {
			return c.String(http.StatusNotFound, "Product not found")
		}
		criticalCSS, err := parts.GetCriticalCSSCached()
		if err != nil {
			criticalCSS = ""
		}
		return c.Render(http.StatusOK, "product.html", map[string]interface{}{
			"Title":       p.Name + " - " + config.AppConfig.AppName,
			"Product":     p,
			"HasDiscount": p.HasDiscount(),
			"MediaUrl":    config.AppConfig.MediaUrl,
			"CriticalCSS": template.CSS(criticalCSS),
		})
	})
}
