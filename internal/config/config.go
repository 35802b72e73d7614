package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"bagy2shopify/internal/apperr"
)

const (
	defaultBagyAPIURL        = "https://api.dooca.store"
	defaultShopifyAPIVersion = "2024-10"
	defaultPageDelay         = 350 * time.Millisecond
)

type Config struct {
	BagyAPIURL string
	BagyAPIKey string

	ShopifyShopDomain  string
	ShopifyAccessToken string
	ShopifyAPIVersion  string

	DatabaseURL string
	RedisURL    string
	MetricsPort string
	Env         string

	PageDelay    time.Duration
	ImportedDir  string
	ConvertedDir string
	StoreBaseURL string
}

func Load() *Config {
	// Carrega .env da raiz do projeto
	_ = godotenv.Load("../../.env")
	// Se não encontrar, tenta no diretório atual
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the process environment without touching .env files.
func FromEnv() *Config {
	return &Config{
		BagyAPIURL:         getEnv("BAGY_API_URL", defaultBagyAPIURL),
		BagyAPIKey:         os.Getenv("API_KEY"),
		ShopifyShopDomain:  os.Getenv("SHOPIFY_SHOP_DOMAIN"),
		ShopifyAccessToken: os.Getenv("SHOPIFY_ACCESS_TOKEN"),
		ShopifyAPIVersion:  getEnv("SHOPIFY_API_VERSION", defaultShopifyAPIVersion),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		MetricsPort:        os.Getenv("METRICS_PORT"),
		Env:                getEnv("APP_ENV", "development"),
		PageDelay:          getDuration("PAGE_DELAY", defaultPageDelay),
		ImportedDir:        getEnv("IMPORTED_DIR", "imported"),
		ConvertedDir:       getEnv("CONVERTED_DIR", "converted"),
		StoreBaseURL:       os.Getenv("STORE_BASE_URL"),
	}
}

// RequireBagy fails when the source platform token is missing.
func (c *Config) RequireBagy() error {
	if c.BagyAPIKey == "" {
		return apperr.New(apperr.KindConfig, "API_KEY não encontrada no ambiente ou no arquivo .env", nil)
	}
	return nil
}

// RequireShopify fails when either Shopify credential is missing.
func (c *Config) RequireShopify() error {
	if c.ShopifyShopDomain == "" || c.ShopifyAccessToken == "" {
		return apperr.New(apperr.KindConfig, "configure SHOPIFY_SHOP_DOMAIN e SHOPIFY_ACCESS_TOKEN no arquivo .env", nil)
	}
	return nil
}

// ShopifyEnabled reports whether calls to the target platform can be made.
func (c *Config) ShopifyEnabled() bool {
	return c.RequireShopify() == nil
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getDuration(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	parsed, err := time.ParseDuration(v)
	if err != nil || parsed < 0 {
		return d
	}
	return parsed
}
