//go:build !cli
// +build !cli

package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"storefront.GO/api"
	_ "storefront.GO/api/account"
	_ "storefront.GO/api/cart"
	_ "storefront.GO/api/catalog"
	_ "storefront.GO/api/favourites"
	_ "storefront.GO/api/graphql"
	_ "storefront.GO/api/media"
	_ "storefront.GO/api/prefs"
	"storefront.GO/config"
	"storefront.GO/core/auth"
	_ "storefront.GO/custom"
	"storefront.GO/html"
	catalogEntity "storefront.GO/model/entity/catalog"
	catalogRepo "storefront.GO/model/repository/catalog"
	catalogService "storefront.GO/service/catalog"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()

	figure.NewFigure(config.AppConfig.AppName, "", true).Print()

	config.InitRedis()
	redisStatus := "Redis not configured, falling back to file-backed state store."
	if config.RedisClient != nil {
		if err := config.RedisClient.Ping(config.RedisCtx()).Err(); err == nil {
			redisStatus = "Redis connection successful."
		} else {
			config.RedisClient = nil
			redisStatus = "Redis configured but not reachable, falling back to file-backed state store."
		}
	}
	log.Println(redisStatus)

	db, err := config.NewDB()
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	sqldb, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get DB instance: %v", err)
	}
	if err := sqldb.Ping(); err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	log.Println("Database connection successful.")

	if err := db.AutoMigrate(&catalogEntity.Category{}, &catalogEntity.Product{}); err != nil {
		log.Fatalf("auto-migrate failed: %v", err)
	}
	seedIfEmpty(db)

	if err := catalogService.GetService(db).Reload(); err != nil {
		log.Fatalf("catalog load failed: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			return err
		}
	})

	e.Renderer = html.NewRenderer()

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	apiGroup := e.Group("/api")
	apiGroup.Use(auth.Middleware())
	api.ApplyModules(apiGroup, db)
	api.ApplyRoutes(e, db)

	html.RegisterProductHTMLRoutes(e, db)
	html.RegisterCategoryHTMLRoutes(e, db)

	port := config.AppConfig.Port
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on :%s", port)
	e.Logger.Fatal(e.Start(":" + port))
}

// seedIfEmpty loads the bundled JSON fixtures on first run so the store works
// out of the box against the sqlite dev database.
func seedIfEmpty(db *gorm.DB) {
	count, err := catalogRepo.GetProductRepository(db).Count()
	if err != nil || count > 0 {
		return
	}
	for _, imp := range []struct {
		path string
		run  func(*gorm.DB, *os.File) error
	}{
		{"data/categories.json", func(db *gorm.DB, f *os.File) error {
			_, err := catalogService.ImportCategories(db, f, catalogService.ImportOptions{})
			return err
		}},
		{"data/products.json", func(db *gorm.DB, f *os.File) error {
			_, err := catalogService.ImportProducts(db, f, catalogService.ImportOptions{})
			return err
		}},
	} {
		f, err := os.Open(imp.path)
		if err != nil {
			log.Printf("seed: %s not found, skipping", imp.path)
			continue
		}
		if err := imp.run(db, f); err != nil {
			log.Printf("seed: import %s: %v", imp.path, err)
		} else {
			log.Printf("seed: imported %s", imp.path)
		}
		f.Close()
	}
}
