package parts

import (
	"log"
	"os"

	"storefront.GO/core/cache"
)

const cssPath = "assets/storefront.css"

// GetCriticalCSS reads the critical CSS file and returns it as a string.
func GetCriticalCSS() (string, error) {
	css, err := os.ReadFile(cssPath)
	if err != nil {
		log.Println("Critical CSS error:", err)
		return "", err
	}
	return string(css), nil
}

// GetCriticalCSSCached caches the CSS in-process so pages do not hit the
// filesystem on every render.
func GetCriticalCSSCached() (string, error) {
	if v, ok := cache.GetInstance().Get("html:critical_css"); ok {
		if s, isStr := v.(string); isStr {
			return s, nil
		}
	}
	css, err := GetCriticalCSS()
	if err != nil {
		return "", err
	}
	cache.GetInstance().Set("html:critical_css", css, 0, nil)
	return css, nil
}
