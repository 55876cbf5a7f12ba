package config

import "github.com/dmitrijs2005/labelshop/internal/flagx"

// parseEnv overlays values from the process environment. Public values may
// come from the NEXT_PUBLIC_* names the storefront build already uses.
func parseEnv(config *Config) {
	p, s := &config.Public, &config.Server

	flagx.EnvString(&p.BackendURL, "NEXT_PUBLIC_MEDUSA_BACKEND_URL", "MEDUSA_BACKEND_URL")
	flagx.EnvString(&p.PublishableKey, "NEXT_PUBLIC_MEDUSA_PUBLISHABLE_KEY", "MEDUSA_PUBLISHABLE_KEY")
	flagx.EnvString(&p.SearchHost, "NEXT_PUBLIC_SEARCH_ENDPOINT", "MEILISEARCH_HOST")
	flagx.EnvString(&p.SearchAPIKey, "NEXT_PUBLIC_SEARCH_API_KEY", "MEILISEARCH_API_KEY")
	flagx.EnvString(&p.SearchIndex, "NEXT_PUBLIC_INDEX_NAME", "SEARCH_INDEX_NAME")
	flagx.EnvString(&p.DefaultRegion, "NEXT_PUBLIC_DEFAULT_REGION", "DEFAULT_REGION")

	flagx.EnvString(&s.HTTPAddr, "STOREFRONT_ADDR")
	flagx.EnvString(&s.CMSURL, "CMS_URL")
	flagx.EnvString(&s.StatePath, "STOREFRONT_STATE_PATH")
	flagx.EnvInt(&s.NewsRateLimit, "NEWS_RATE_LIMIT")
	flagx.EnvDuration(&s.NewsRateWindow, "NEWS_RATE_WINDOW")
	flagx.EnvDuration(&s.UpstreamTimeout, "UPSTREAM_TIMEOUT")
	flagx.EnvList(&s.CORSOrigins, "STORE_CORS")
	flagx.EnvBool(&s.SecureCookies, "SECURE_COOKIES")
	flagx.EnvBool(&s.TrustProxyHeaders, "TRUST_PROXY_HEADERS")
	flagx.EnvString(&s.LogLevel, "LOG_LEVEL")
}
