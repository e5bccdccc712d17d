package cart

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storefront.GO/api"
	"storefront.GO/core/auth"
	cartService "storefront.GO/service/cart"
)

func init() {
	api.RegisterModule(RegisterCartRoutes)
}

type addRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func sessionOr400(c echo.Context) (string, error) {
	sid := auth.SessionID(c)
	if sid == "" {
		return "", c.JSON(http.StatusBadRequest, echo.Map{"error": "missing session: supply a Bearer token or X-Session-ID header"})
	}
	return sid, nil
}

func RegisterCartRoutes(apiGroup *echo.Group, db *gorm.DB) {
	svc := cartService.GetService(db)
	g := apiGroup.Group("/cart")

	// GET /api/cart – hydrated cart with totals
	g.GET("", func(c echo.Context) error {
		sid, err := sessionOr400(c)
		if sid == "" {
			return err
		}
		return c.JSON(http.StatusOK, svc.Get(c.Request().Context(), sid))
	})

	// POST /api/cart/items – add (or merge) an entry
	g.POST("/items", func(c echo.Context) error {
		sid, err := sessionOr400(c)
		if sid == "" {
			return err
		}
		var req addRequest
		if err := c.Bind(&req); err != nil || req.ProductID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id required"})
		}
		if err := svc.Add(c.Request().Context(), sid, req.ProductID, req.Quantity); err != nil {
			switch {
			case errors.Is(err, cartService.ErrProductNotFound):
				return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
			case errors.Is(err, cartService.ErrCartFull):
				return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
			default:
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
			}
		}
		return c.JSON(http.StatusOK, svc.Get(c.Request().Context(), sid))
	})

	// PUT /api/cart/items/:id – set quantity (<=0 removes)
	g.PUT("/items/:id", func(c echo.Context) error {
		sid, err := sessionOr400(c)
		if sid == "" {
			return err
		}
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		var req quantityRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
		}
		if err := svc.UpdateQuantity(c.Request().Context(), sid, uint(id), req.Quantity); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, svc.Get(c.Request().Context(), sid))
	})

	// DELETE /api/cart/items/:id
	g.DELETE("/items/:id", func(c echo.Context) error {
		sid, err := sessionOr400(c)
		if sid == "" {
			return err
		}
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		if err := svc.Remove(c.Request().Context(), sid, uint(id)); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, svc.Get(c.Request().Context(), sid))
	})

	// POST /api/cart/clear
	g.POST("/clear", func(c echo.Context) error {
		sid, err := sessionOr400(c)
		if sid == "" {
			return err
		}
		if err := svc.Clear(c.Request().Context(), sid); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, svc.Get(c.Request().Context(), sid))
	})
}
