package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrEmptyToken = errors.New("error getting AOT_TELEGRAM_TOKEN: variable not specified or contains an empty string")

type Config struct {
	Env           string // Env is the current environment: local, dev, prod.
	BaseURL       string // BaseURL is the root of the tracked site.
	Categories    []string
	SizeFilter    string // SizeFilter is optional; empty disables size filtering.
	StoragePath   string
	CheckInterval time.Duration
	AlertInterval time.Duration // AlertInterval throttles failure alerts.
	Tg            Telegram
}

type Telegram struct {
	Token   string        // Token is an unique telegram bot token.
	Timeout time.Duration // Timeout is a poller timeout duration.
}

// MustLoad loads the configuration from environment variables and returns a Config struct.
func MustLoad() *Config {
	// Automatically binds environment variables to config keys
	viper.SetEnvPrefix("AOT")
	viper.AutomaticEnv()

	// optional args
	viper.SetDefault("ENV", "production")
	viper.SetDefault("BASE_URL", "https://arcteryx.com")
	viper.SetDefault("CATEGORIES", "mens,womens")
	viper.SetDefault("STORAGE_PATH", "tracker.db")
	viper.SetDefault("CHECK_INTERVAL", "1h")
	viper.SetDefault("ALERT_INTERVAL", "6h")
	viper.SetDefault("TELEGRAM_TIMEOUT", "15s")

	if viper.GetString("TELEGRAM_TOKEN") == "" {
		panic(ErrEmptyToken)
	}

	return &Config{
		Env:           viper.GetString("ENV"),
		BaseURL:       viper.GetString("BASE_URL"),
		Categories:    splitCategories(viper.GetString("CATEGORIES")),
		SizeFilter:    viper.GetString("SIZE_FILTER"),
		StoragePath:   viper.GetString("STORAGE_PATH"),
		CheckInterval: viper.GetDuration("CHECK_INTERVAL"),
		AlertInterval: viper.GetDuration("ALERT_INTERVAL"),
		Tg: Telegram{
			Token:   viper.GetString("TELEGRAM_TOKEN"),
			Timeout: viper.GetDuration("TELEGRAM_TIMEOUT"),
		},
	}
}

// splitCategories parses the comma-separated category slugs, dropping
// empty entries and surrounding whitespace.
func splitCategories(raw string) []string {
	var categories []string

	for _, part := range strings.Split(raw, ",") {
		if slug := strings.TrimSpace(part); slug != "" {
			categories = append(categories, slug)
		}
	}

	return categories
}
