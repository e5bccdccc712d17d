package favourites

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storefront.GO/api"
	"storefront.GO/core/auth"
	favouritesService "storefront.GO/service/favourites"
)

func init() {
	api.RegisterModule(RegisterFavouritesRoutes)
}

func sessionOr400(c echo.Context) (string, error) {
	sid := auth.SessionID(c)
	if sid == "" {
		return "", c.JSON(http.StatusBadRequest, echo.Map{"error": "missing session: supply a Bearer token or X-Session-ID header"})
	}
	return sid, nil
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

func RegisterFavouritesRoutes(apiGroup *echo.Group, db *gorm.DB) {
	svc := favouritesService.GetService(db)
	g := apiGroup.Group("/favourites")

	// GET /api/favourites – hydrated favourite products
	g.GET("", func(c echo.Context) error {
		sid, err := sessionOr400(c)
		if sid == "" {
			return err
		}
		ctx := c.Request().Context()
		return c.JSON(http.StatusOK, echo.Map{
			"favourites": svc.List(ctx, sid),
			"count":      svc.Count(ctx, sid),
		})
	})

	// PUT /api/favourites/:id – add to the set (idempotent)
	g.PUT("/:id", func(c echo.Context) error {
		sid, err := sessionOr400(c)
		if sid == "" {
			return err
		}
		id, err := parseID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		if err := svc.Add(c.Request().Context(), sid, id); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"favourite": true, "count": svc.Count(c.Request().Context(), sid)})
	})

	// POST /api/favourites/:id/toggle – flip membership, report new state
	g.POST("/:id/toggle", func(c echo.Context) error {
		sid, err := sessionOr400(c)
		if sid == "" {
			return err
		}
		id, err := parseID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		state, err := svc.Toggle(c.Request().Context(), sid, id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"favourite": state, "count": svc.Count(c.Request().Context(), sid)})
	})

	// DELETE /api/favourites/:id
	g.DELETE("/:id", func(c echo.Context) error {
		sid, err := sessionOr400(c)
		if sid == "" {
			return err
		}
		id, err := parseID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		if err := svc.Remove(c.Request().Context(), sid, id); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"favourite": false, "count": svc.Count(c.Request().Context(), sid)})
	})

	// POST /api/favourites/clear
	g.POST("/clear", func(c echo.Context) error {
		sid, err := sessionOr400(c)
		if sid == "" {
			return err
		}
		if err := svc.Clear(c.Request().Context(), sid); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"favourites": []interface{}{}, "count": 0})
	})
}
