package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	apperrors "github.com/jafarshop/metasync/pkg/errors"
)

type Config struct {
	Source     StoreConfig
	Target     StoreConfig
	Token      string // SHOPIFY_ACCESS_TOKEN: fallback when --store matches neither configured store
	APIVersion string
	LogLevel   string
	Quiet      bool // set from the CLI, not the environment
}

// StoreConfig pairs a store domain with its Admin API token
type StoreConfig struct {
	Domain string
	Token  string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("SHOPIFY_API_VERSION", "2025-01")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, &apperrors.ErrConfiguration{Key: ".env", Reason: err.Error()}
		}
	}

	cfg := &Config{
		Source: StoreConfig{
			Domain: normalizeDomain(getEnvOrViper("SHOPIFY_SOURCE_STORE", "")),
			Token:  strings.TrimSpace(getEnvOrViper("SHOPIFY_SOURCE_TOKEN", "")),
		},
		Target: StoreConfig{
			Domain: normalizeDomain(getEnvOrViper("SHOPIFY_TARGET_STORE", "")),
			Token:  strings.TrimSpace(getEnvOrViper("SHOPIFY_TARGET_TOKEN", "")),
		},
		Token:      strings.TrimSpace(getEnvOrViper("SHOPIFY_ACCESS_TOKEN", "")),
		APIVersion: getEnvOrViper("SHOPIFY_API_VERSION", "2025-01"),
		LogLevel:   getEnvOrViper("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// ResolveStore returns the store config for a --store domain. A domain that
// matches the configured source or target store gets that store's token;
// anything else falls back to SHOPIFY_ACCESS_TOKEN.
func (c *Config) ResolveStore(domain string) (StoreConfig, error) {
	domain = normalizeDomain(domain)
	if domain == "" {
		return StoreConfig{}, &apperrors.ErrConfiguration{Key: "--store", Reason: "store domain is required for live operations"}
	}

	switch domain {
	case c.Source.Domain:
		if c.Source.Token == "" {
			return StoreConfig{}, &apperrors.ErrConfiguration{Key: "SHOPIFY_SOURCE_TOKEN", Reason: fmt.Sprintf("no token configured for source store %s", domain)}
		}
		return StoreConfig{Domain: domain, Token: c.Source.Token}, nil
	case c.Target.Domain:
		if c.Target.Token == "" {
			return StoreConfig{}, &apperrors.ErrConfiguration{Key: "SHOPIFY_TARGET_TOKEN", Reason: fmt.Sprintf("no token configured for target store %s", domain)}
		}
		return StoreConfig{Domain: domain, Token: c.Target.Token}, nil
	}

	if c.Token == "" {
		return StoreConfig{}, &apperrors.ErrConfiguration{Key: "SHOPIFY_ACCESS_TOKEN", Reason: fmt.Sprintf("no token configured for store %s", domain)}
	}
	return StoreConfig{Domain: domain, Token: c.Token}, nil
}

// normalizeDomain strips the scheme and trailing slashes from a store domain
func normalizeDomain(domain string) string {
	domain = strings.TrimSpace(domain)
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimSuffix(domain, "/")
	return domain
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
