package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
)

// Config captures the storefront client settings.
type Config struct {
	BackendURL     string
	Currency       string
	DeliveryFee    decimal.Decimal
	CatalogRefresh time.Duration // zero fetches the catalog once
	LogLevel       string
	LogFile        string
}

const (
	defaultConfigPath  = "~/.config/storefront/config.toml"
	defaultBackendURL  = "http://127.0.0.1:4000"
	defaultCurrency    = "LKR "
	defaultDeliveryFee = 350
	defaultLogLevel    = "info"
	defaultLogFile     = "~/.local/state/storefront/storefront.log"

	// BackendURLEnv overrides backend_url when set.
	BackendURLEnv = "STOREFRONT_BACKEND_URL"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BackendURL:  defaultBackendURL,
		Currency:    defaultCurrency,
		DeliveryFee: decimal.NewFromInt(defaultDeliveryFee),
		LogLevel:    defaultLogLevel,
		LogFile:     mustExpand(defaultLogFile),
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BackendURL            string   `toml:"backend_url"`
		Currency              *string  `toml:"currency"`
		DeliveryFee           *float64 `toml:"delivery_fee"`
		CatalogRefreshSeconds int      `toml:"catalog_refresh_seconds"`
		LogLevel              string   `toml:"log_level"`
		LogFile               string   `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BackendURL); v != "" {
		cfg.BackendURL = v
	}
	// Currency is a prefix such as "LKR " so only an unset value falls back.
	if raw.Currency != nil && strings.TrimSpace(*raw.Currency) != "" {
		cfg.Currency = *raw.Currency
	}
	if raw.DeliveryFee != nil {
		if *raw.DeliveryFee < 0 {
			return Config{}, fmt.Errorf("delivery_fee must not be negative")
		}
		cfg.DeliveryFee = decimal.NewFromFloat(*raw.DeliveryFee)
	}
	if raw.CatalogRefreshSeconds > 0 {
		cfg.CatalogRefresh = time.Duration(raw.CatalogRefreshSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// FormatPrice renders an amount with the configured currency prefix.
func (c Config) FormatPrice(amount decimal.Decimal) string {
	currency := c.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	return currency + amount.StringFixed(2)
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(BackendURLEnv)); v != "" {
		cfg.BackendURL = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
