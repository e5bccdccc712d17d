package prefs

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storefront.GO/api"
	"storefront.GO/core/auth"
	prefsService "storefront.GO/service/prefs"
)

func init() {
	api.RegisterModule(RegisterPrefsRoutes)
}

func RegisterPrefsRoutes(apiGroup *echo.Group, db *gorm.DB) {
	svc := prefsService.GetService()
	g := apiGroup.Group("/prefs")

	// GET /api/prefs – stored preferences, defaults when none saved
	g.GET("", func(c echo.Context) error {
		sid := auth.SessionID(c)
		if sid == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing session: supply a Bearer token or X-Session-ID header"})
		}
		return c.JSON(http.StatusOK, svc.Get(c.Request().Context(), sid))
	})

	// PUT /api/prefs – replace preferences, values validated against enums
	g.PUT("", func(c echo.Context) error {
		sid := auth.SessionID(c)
		if sid == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing session: supply a Bearer token or X-Session-ID header"})
		}
		var p prefsService.Preferences
		if err := c.Bind(&p); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
		}
		if err := svc.Set(c.Request().Context(), sid, p); err != nil {
			if errors.Is(err, prefsService.ErrInvalidPreference) {
				return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, p)
	})
}
