package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/labelshop/internal/flagx"
	"github.com/dmitrijs2005/labelshop/internal/timex"
)

type JsonPublic struct {
	BackendURL     string `json:"backend_url"`
	PublishableKey string `json:"publishable_key"`
	SearchHost     string `json:"search_host"`
	SearchAPIKey   string `json:"search_api_key"`
	SearchIndex    string `json:"search_index"`
	DefaultRegion  string `json:"default_region"`
}

type JsonServer struct {
	HTTPAddr          string         `json:"http_addr"`
	CMSURL            string         `json:"cms_url"`
	StatePath         string         `json:"state_path"`
	NewsRateLimit     int            `json:"news_rate_limit"`
	NewsRateWindow    timex.Duration `json:"news_rate_window"`
	UpstreamTimeout   timex.Duration `json:"upstream_timeout"`
	CORSOrigins       []string       `json:"cors_origins"`
	SecureCookies     *bool          `json:"secure_cookies"`
	TrustProxyHeaders *bool          `json:"trust_proxy_headers"`
	LogLevel          string         `json:"log_level"`
}

// JsonConfig is the on-disk shape of the storefront config file.
type JsonConfig struct {
	Public JsonPublic `json:"public"`
	Server JsonServer `json:"server"`
}

func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	p, s := &config.Public, &config.Server
	setString(&p.BackendURL, c.Public.BackendURL)
	setString(&p.PublishableKey, c.Public.PublishableKey)
	setString(&p.SearchHost, c.Public.SearchHost)
	setString(&p.SearchAPIKey, c.Public.SearchAPIKey)
	setString(&p.SearchIndex, c.Public.SearchIndex)
	setString(&p.DefaultRegion, c.Public.DefaultRegion)

	setString(&s.HTTPAddr, c.Server.HTTPAddr)
	setString(&s.CMSURL, c.Server.CMSURL)
	setString(&s.StatePath, c.Server.StatePath)
	if c.Server.NewsRateLimit > 0 {
		s.NewsRateLimit = c.Server.NewsRateLimit
	}
	if c.Server.NewsRateWindow.Duration > 0 {
		s.NewsRateWindow = c.Server.NewsRateWindow.Duration
	}
	if c.Server.UpstreamTimeout.Duration > 0 {
		s.UpstreamTimeout = c.Server.UpstreamTimeout.Duration
	}
	if len(c.Server.CORSOrigins) > 0 {
		s.CORSOrigins = c.Server.CORSOrigins
	}
	if c.Server.SecureCookies != nil {
		s.SecureCookies = *c.Server.SecureCookies
	}
	if c.Server.TrustProxyHeaders != nil {
		s.TrustProxyHeaders = *c.Server.TrustProxyHeaders
	}
	setString(&s.LogLevel, c.Server.LogLevel)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
