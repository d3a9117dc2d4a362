package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr           string
	JWTSecret      string
	CatalogBaseURL string

	// default page size for catalog views
	PageSize int
	// quiet period before a search actually hits the catalog API
	SearchDebounce time.Duration

	// StorageDriver selects the key-value backend: memory, file or redis.
	StorageDriver string
	StoragePath   string
	RedisAddr     string
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		Addr:           getenv("STOREFRONT_ADDR", ":8080"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		CatalogBaseURL: getenv("CATALOG_API_URL", "http://localhost:9000/products"),
		PageSize:       getint("STOREFRONT_PAGE_SIZE", 12),
		SearchDebounce: getduration("SEARCH_DEBOUNCE_MS", 300*time.Millisecond),
		StorageDriver:  getenv("STORAGE_DRIVER", "file"),
		StoragePath:    getenv("STORAGE_PATH", "./storefront-data.json"),
		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return def
}
