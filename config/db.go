package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens the catalog database. MySQL when MYSQL_DSN (or MYSQL_* vars) is set,
// otherwise a local sqlite file so the store runs self-contained off the fixtures.
func NewDB() (*gorm.DB, error) {
	logMode := logger.Warn
	if os.Getenv("GORM_LOG") == "off" {
		logMode = logger.Silent
	}
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logMode,
			Colorful:      true,
		},
	)

	if dsn := MySQLDSN(); dsn != "" {
		return gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
	}

	path := GetEnv("SQLITE_PATH", "data/storefront.db")
	return gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLogger})
}

// MySQLDSN builds the MySQL DSN from MYSQL_DSN or the individual MYSQL_* vars.
// Empty when no MySQL is configured (sqlite fallback applies).
func MySQLDSN() string {
	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		return dsn
	}
	if os.Getenv("MYSQL_HOST") == "" {
		return ""
	}
	port := os.Getenv("MYSQL_PORT")
	if port == "" {
		port = "3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=Local",
		os.Getenv("MYSQL_USER"), os.Getenv("MYSQL_PASS"), os.Getenv("MYSQL_HOST"), port, os.Getenv("MYSQL_DB"))
}
