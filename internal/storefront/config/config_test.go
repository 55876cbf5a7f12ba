package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"testbin"}, args...)
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	want := Public{
		BackendURL:    "http://localhost:9000",
		SearchHost:    "http://localhost:7700",
		SearchIndex:   "products",
		DefaultRegion: "us",
	}
	if diff := cmp.Diff(want, c.Public); diff != "" {
		t.Fatalf("public defaults mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 60, c.Server.NewsRateLimit)
	assert.Equal(t, time.Minute, c.Server.NewsRateWindow)
}

func Test_parseJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.json")
	b, err := json.Marshal(map[string]any{
		"public": map[string]any{"publishable_key": "pk_1", "search_index": "catalogue"},
		"server": map[string]any{"news_rate_window": "30s", "secure_cookies": true, "news_rate_limit": 10},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	withArgs(t, "-c", path)

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "pk_1", cfg.Public.PublishableKey)
	assert.Equal(t, "catalogue", cfg.Public.SearchIndex)
	assert.Equal(t, "http://localhost:7700", cfg.Public.SearchHost)
	assert.Equal(t, 30*time.Second, cfg.Server.NewsRateWindow)
	assert.Equal(t, 10, cfg.Server.NewsRateLimit)
	assert.True(t, cfg.Server.SecureCookies)
}

func Test_parseJson_Invalid(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o600))
	withArgs(t, "-config", bad)

	assert.Panics(t, func() { parseJson(&Config{}) })
}

func Test_parseEnv_PublicNameWins(t *testing.T) {
	t.Setenv("NEXT_PUBLIC_MEDUSA_PUBLISHABLE_KEY", "pk_public")
	t.Setenv("MEDUSA_PUBLISHABLE_KEY", "pk_server")
	t.Setenv("MEILISEARCH_HOST", "http://search:7700")
	t.Setenv("NEWS_RATE_LIMIT", "120")
	t.Setenv("STORE_CORS", "https://a.test, https://b.test")
	t.Setenv("TRUST_PROXY_HEADERS", "true")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "pk_public", cfg.Public.PublishableKey)
	assert.Equal(t, "http://search:7700", cfg.Public.SearchHost)
	assert.Equal(t, 120, cfg.Server.NewsRateLimit)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.Server.TrustProxyHeaders)
}

func Test_parseFlags(t *testing.T) {
	withArgs(t, "-a", ":8080", "-n", "5", "-c", "ignored.json")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, 5, cfg.Server.NewsRateLimit)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero limit", mutate: func(c *Config) { c.Server.NewsRateLimit = 0 }, wantErr: "news rate limit"},
		{name: "negative limit", mutate: func(c *Config) { c.Server.NewsRateLimit = -1 }, wantErr: "news rate limit"},
		{name: "zero window", mutate: func(c *Config) { c.Server.NewsRateWindow = 0 }, wantErr: "news rate window"},
		{name: "negative window", mutate: func(c *Config) { c.Server.NewsRateWindow = -time.Second }, wantErr: "news rate window"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.LoadDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
