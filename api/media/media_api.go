// Package media serves catalog imagery. Originals live under the configured
// media directory; resized variants are encoded on demand (webp when the
// client accepts it, jpeg otherwise) and kept in the in-process cache.
package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storefront.GO/api"
	"storefront.GO/config"
	"storefront.GO/core/cache"
)

func init() {
	api.RegisterRoute(RegisterMediaRoutes)
}

const (
	maxWidth     = 1600
	jpegQuality  = 85
	webpQuality  = 80
	variantTTL   = 3600 // seconds
	cacheControl = "public, max-age=86400"
)

func RegisterMediaRoutes(e *echo.Echo, db *gorm.DB) {
	config.LoadAppConfig()
	e.GET("/media/image", serveImage)
}

func serveImage(c echo.Context) error {
	file := c.QueryParam("file")
	if file == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file required"})
	}
	// Reject traversal before touching the filesystem.
	clean := filepath.Clean("/" + file)
	path := filepath.Join(config.AppConfig.MediaDir, clean)

	width := 0
	if v := c.QueryParam("w"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxWidth {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("w must be 1..%d", maxWidth)})
		}
		width = n
	}

	wantWebp := strings.Contains(c.Request().Header.Get("Accept"), "image/webp")
	if width == 0 && !wantWebp {
		c.Response().Header().Set("Cache-Control", cacheControl)
		return c.File(path)
	}

	format := "jpeg"
	if wantWebp {
		format = "webp"
	}
	cacheKey := []interface{}{"media", clean, width, format}
	if data, found := cache.GetInstance().GetN(cacheKey...); found {
		if buf, ok := data.([]byte); ok {
			return send(c, format, buf)
		}
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "image not found"})
	}
	if width > 0 && img.Bounds().Dx() > width {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}

	buf, err := encode(img, format)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	cache.GetInstance().SetN(cacheKey, buf, variantTTL, []string{"media"})
	return send(c, format, buf)
}

func encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	if format == "webp" {
		err = webp.Encode(&buf, img, &webp.Options{Quality: webpQuality})
	} else {
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, fmt.Errorf("media: encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

func send(c echo.Context, format string, data []byte) error {
	c.Response().Header().Set("Cache-Control", cacheControl)
	return c.Blob(http.StatusOK, "image/"+format, data)
}
