package account

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storefront.GO/api"
	"storefront.GO/core/auth"
	customerService "storefront.GO/service/customer"
)

func init() {
	api.RegisterModule(RegisterAccountRoutes)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func RegisterAccountRoutes(apiGroup *echo.Group, db *gorm.DB) {
	svc := customerService.GetService()
	g := apiGroup.Group("/account")

	// POST /api/account/login – public
	g.POST("/login", func(c echo.Context) error {
		var req loginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
		}
		session, err := svc.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
		}
		return c.JSON(http.StatusOK, echo.Map{"token": session.Token, "user": session.User})
	})

	// POST /api/account/register – public, logs the new customer straight in
	g.POST("/register", func(c echo.Context) error {
		var req customerService.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
		}
		session, err := svc.Register(c.Request().Context(), req)
		if err != nil {
			if errors.Is(err, customerService.ErrEmailTaken) {
				return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
			}
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email, password and name are required"})
		}
		return c.JSON(http.StatusCreated, echo.Map{"token": session.Token, "user": session.User})
	})

	// POST /api/account/logout – requires a session token
	g.POST("/logout", func(c echo.Context) error {
		token := auth.Token(c)
		if token == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not logged in"})
		}
		if err := svc.Logout(c.Request().Context(), token); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "logged out"})
	})

	// GET /api/account/profile
	g.GET("/profile", func(c echo.Context) error {
		user := auth.CurrentUser(c)
		if user == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not logged in"})
		}
		return c.JSON(http.StatusOK, echo.Map{"user": user})
	})

	// PUT /api/account/profile – partial update, nil fields untouched
	g.PUT("/profile", func(c echo.Context) error {
		token := auth.Token(c)
		if auth.CurrentUser(c) == nil || token == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not logged in"})
		}
		var req customerService.UpdateRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
		}
		user, err := svc.UpdateUser(c.Request().Context(), token, req)
		if err != nil {
			if errors.Is(err, customerService.ErrSessionNotFound) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"user": user})
	})
}
