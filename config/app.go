package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName  string
	Port     string
	Env      string
	Debug    bool
	MediaUrl string
	MediaDir string
	DataDir  string

	// Cart capacity caps
	CartMaxItems int
	CartMaxQty   int

	// Catalog paging
	DefaultPageSize int
	PageSizes       []int

	SessionTTL time.Duration
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName:  GetEnv("APP_NAME", "storefront.GO"),
			Port:     os.Getenv("PORT"),
			Env:      os.Getenv("APP_ENV"),
			Debug:    os.Getenv("DEBUG") == "true",
			MediaUrl: GetEnv("MEDIA_URL", "/media/image?file="),
			MediaDir: GetEnv("MEDIA_DIR", "assets/media"),
			DataDir:  GetEnv("DATA_DIR", "data/state"),

			CartMaxItems: envInt("CART_MAX_ITEMS", 50),
			CartMaxQty:   envInt("CART_MAX_QTY", 99),

			DefaultPageSize: envInt("PAGE_SIZE", 12),
			PageSizes:       []int{12, 24, 48},

			SessionTTL: time.Duration(envInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		}
	})
}

// AllowedPageSize reports whether n is one of the configured page sizes.
func (c *Config) AllowedPageSize(n int) bool {
	for _, s := range c.PageSizes {
		if s == n {
			return true
		}
	}
	return false
}
