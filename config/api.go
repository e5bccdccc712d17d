package config

// GetAuthSkipperPaths returns a list of paths to skip session authentication for.
// Catalog browsing, suggestions, cart and favourites work for guest sessions;
// only account routes require a login token.
func GetAuthSkipperPaths() []string {
	return []string{
		"/api/catalog/products",
		"/api/catalog/products/:id",
		"/api/catalog/products/slug/:slug",
		"/api/catalog/categories",
		"/api/catalog/suggest",
		"/api/catalog/search",
		"/api/catalog/stock",
		"/api/cart",
		"/api/cart/items",
		"/api/cart/items/:id",
		"/api/cart/clear",
		"/api/favourites",
		"/api/favourites/:id",
		"/api/favourites/:id/toggle",
		"/api/favourites/clear",
		"/api/prefs",
		"/api/account/login",
		"/api/account/register",
	}
}
