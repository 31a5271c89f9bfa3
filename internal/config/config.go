package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the full application configuration.
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Sheet  SheetConfig  `toml:"sheet"`
	Quote  QuoteConfig  `toml:"quote"`
	Cache  CacheConfig  `toml:"cache"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// SheetConfig identifies the source spreadsheet and its tabs.
type SheetConfig struct {
	SheetID          string `toml:"sheet_id"`
	ProductGID       string `toml:"product_gid"`
	ShippingGID      string `toml:"shipping_gid"`
	FetchTimeoutSecs int    `toml:"fetch_timeout_secs"`
}

// QuoteConfig holds pricing defaults.
type QuoteConfig struct {
	DefaultDiscountPct float64 `toml:"default_discount_pct"`
}

// CacheConfig holds the per-table TTLs. The frete table changes far less
// often than the catalog, hence the longer TTL.
type CacheConfig struct {
	CatalogTTLSecs  int `toml:"catalog_ttl_secs"`
	ShippingTTLSecs int `toml:"shipping_ttl_secs"`
}

// DefaultConfig returns the built-in defaults, matching the live sheet.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    5001,
			DevMode: false,
		},
		Sheet: SheetConfig{
			SheetID:          "1Ycsc6ksvaO5EwOGq_w-N8awTKUyuo7awwu2IzRNfLVg",
			ProductGID:       "0",
			ShippingGID:      "117017797",
			FetchTimeoutSecs: 30,
		},
		Quote: QuoteConfig{
			DefaultDiscountPct: 0,
		},
		Cache: CacheConfig{
			CatalogTTLSecs:  300,
			ShippingTTLSecs: 1800,
		},
	}
}

// FetchTimeout returns the outbound HTTP timeout.
func (c *AppConfig) FetchTimeout() time.Duration {
	return time.Duration(c.Sheet.FetchTimeoutSecs) * time.Second
}

// CatalogTTL returns the catalog cache TTL.
func (c *AppConfig) CatalogTTL() time.Duration {
	return time.Duration(c.Cache.CatalogTTLSecs) * time.Second
}

// ShippingTTL returns the frete table cache TTL.
func (c *AppConfig) ShippingTTL() time.Duration {
	return time.Duration(c.Cache.ShippingTTLSecs) * time.Second
}

// GetExeDir returns the directory of the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig reads config.toml from the executable's directory on top of the
// defaults, then applies environment overrides (a .env file is honored when
// present). A missing config file is not an error.
func LoadConfig() (*AppConfig, error) {
	_ = godotenv.Load()

	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyEnvOverrides(config)
	return config, nil
}

func applyEnvOverrides(config *AppConfig) {
	if v := os.Getenv("APOIOV_SHEET_ID"); v != "" {
		config.Sheet.SheetID = v
	}
	if v := os.Getenv("APOIOV_PRODUCT_GID"); v != "" {
		config.Sheet.ProductGID = v
	}
	if v := os.Getenv("APOIOV_SHIPPING_GID"); v != "" {
		config.Sheet.ShippingGID = v
	}
	if v := os.Getenv("APOIOV_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("APOIOV_DEFAULT_DISCOUNT_PCT"); v != "" {
		if pct, err := strconv.ParseFloat(v, 64); err == nil && pct >= 0 && pct <= 100 {
			config.Quote.DefaultDiscountPct = pct
		}
	}
}

// SaveConfig writes the configuration back to config.toml.
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0644)
}
