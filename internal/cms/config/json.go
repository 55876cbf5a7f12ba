package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/labelshop/internal/flagx"
	"github.com/dmitrijs2005/labelshop/internal/timex"
)

// JsonConfig is the on-disk shape of the CMS config file. Durations accept
// both "15m" and integer nanoseconds.
type JsonConfig struct {
	HTTPAddr                     string         `json:"http_addr"`
	GRPCAddr                     string         `json:"grpc_addr"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	S3AccessKey                  string         `json:"s3_access_key"`
	S3SecretKey                  string         `json:"s3_secret_key"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
	S3PublicBaseURL              string         `json:"s3_public_base_url"`
	PublishableAPIKey            string         `json:"publishable_api_key"`
	CORSOrigins                  []string       `json:"cors_origins"`
	SendGridAPIKey               string         `json:"sendgrid_api_key"`
	MailFrom                     string         `json:"mail_from"`
	SiteURL                      string         `json:"site_url"`
	LogLevel                     string         `json:"log_level"`
	BootstrapOperatorEmail       string         `json:"bootstrap_operator_email"`
	BootstrapOperatorPassword    string         `json:"bootstrap_operator_password"`
}

// parseJson overlays values from the file named by -c/-config. Keys missing
// from the file keep their current value. An unreadable file or invalid JSON
// panics.
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

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration.Duration > 0 {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	setString(&config.S3AccessKey, c.S3AccessKey)
	setString(&config.S3SecretKey, c.S3SecretKey)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3PublicBaseURL, c.S3PublicBaseURL)
	setString(&config.PublishableAPIKey, c.PublishableAPIKey)
	if len(c.CORSOrigins) > 0 {
		config.CORSOrigins = c.CORSOrigins
	}
	setString(&config.SendGridAPIKey, c.SendGridAPIKey)
	setString(&config.MailFrom, c.MailFrom)
	setString(&config.SiteURL, c.SiteURL)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.BootstrapOperatorEmail, c.BootstrapOperatorEmail)
	setString(&config.BootstrapOperatorPassword, c.BootstrapOperatorPassword)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
