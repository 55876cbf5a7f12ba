// Package config resolves the storefront API configuration. Values are split
// into a Public half, which may be handed to browsers, and a Server half
// that never leaves the process.
package config

import (
	"fmt"
	"time"
)

// Public is the client-visible configuration served by GET /api/config.
type Public struct {
	BackendURL     string `json:"backendUrl"`
	PublishableKey string `json:"publishableKey"`
	SearchHost     string `json:"searchHost"`
	// SearchAPIKey must be a search-only key.
	SearchAPIKey  string `json:"searchApiKey"`
	SearchIndex   string `json:"searchIndex"`
	DefaultRegion string `json:"defaultRegion"`
}

// Server holds process-only settings.
type Server struct {
	HTTPAddr string
	// CMSURL is the base URL of the CMS backend proxied by /api/news.
	CMSURL string
	// StatePath is the SQLite file holding session carts and the region cache.
	StatePath       string
	NewsRateLimit   int
	NewsRateWindow  time.Duration
	UpstreamTimeout time.Duration
	CORSOrigins     []string
	SecureCookies   bool
	// TrustProxyHeaders keys rate limits on X-Forwarded-For. Only safe behind
	// a proxy that overwrites the header.
	TrustProxyHeaders bool
	LogLevel          string
}

type Config struct {
	Public Public
	Server Server
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Public = Public{
		BackendURL:    "http://localhost:9000",
		SearchHost:    "http://localhost:7700",
		SearchIndex:   "products",
		DefaultRegion: "us",
	}
	c.Server = Server{
		HTTPAddr:        ":8000",
		CMSURL:          "http://localhost:9000",
		StatePath:       "storefront.db",
		NewsRateLimit:   60,
		NewsRateWindow:  time.Minute,
		UpstreamTimeout: 10 * time.Second,
		LogLevel:        "info",
	}
}

// LoadConfig merges defaults, the JSON file, the environment and flags,
// in that order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.NewsRateLimit <= 0 {
		return fmt.Errorf("news rate limit must be positive, got %d", c.Server.NewsRateLimit)
	}
	if c.Server.NewsRateWindow <= 0 {
		return fmt.Errorf("news rate window must be positive, got %s", c.Server.NewsRateWindow)
	}
	return nil
}
