// Package auth provides the session-token middleware for the /api group.
// Catalog, cart and favourites routes are public (guest sessions); account
// routes require a login token issued by the customer service.
package auth

import (
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"storefront.GO/config"
	customerService "storefront.GO/service/customer"
)

// Middleware returns the session auth middleware for the /api group.
func Middleware() echo.MiddlewareFunc {
	skipper := buildSkipper()
	svc := customerService.GetService()
	staticKey := os.Getenv("API_KEY")
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(token string, c echo.Context) (bool, error) {
			if staticKey != "" && token == staticKey {
				c.Set("auth_type", "static")
				return true, nil
			}
			user, err := svc.Authenticate(c.Request().Context(), token)
			if err != nil {
				return false, nil
			}
			c.Set("auth_type", "session")
			c.Set("session_token", token)
			c.Set("customer", user)
			return true, nil
		},
		Skipper: skipper,
	})
}

func buildSkipper() middleware.Skipper {
	skipPaths := config.GetAuthSkipperPaths()
	return func(c echo.Context) bool {
		path := c.Path()
		for _, skip := range skipPaths {
			if path == skip {
				return true
			}
		}
		return false
	}
}

// CurrentUser returns the authenticated customer, nil for guests.
func CurrentUser(c echo.Context) *customerService.User {
	if u, ok := c.Get("customer").(*customerService.User); ok {
		return u
	}
	return nil
}

// Token returns the bearer token of the request, "" when absent.
func Token(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// SessionID identifies the client-state owner: the login token when present,
// otherwise the guest session header the UI generates on first visit.
func SessionID(c echo.Context) string {
	if token := Token(c); token != "" {
		return token
	}
	return c.Request().Header.Get("X-Session-ID")
}
