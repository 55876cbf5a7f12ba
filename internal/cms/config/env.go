package config

import "github.com/dmitrijs2005/labelshop/internal/flagx"

// parseEnv overlays values from the process environment.
func parseEnv(config *Config) {
	flagx.EnvString(&config.HTTPAddr, "CMS_HTTP_ADDR")
	flagx.EnvString(&config.GRPCAddr, "CMS_GRPC_ADDR")
	flagx.EnvString(&config.DatabaseDSN, "DATABASE_URL")
	flagx.EnvString(&config.SecretKey, "JWT_SECRET")
	flagx.EnvDuration(&config.AccessTokenValidityDuration, "ACCESS_TOKEN_TTL")
	flagx.EnvDuration(&config.RefreshTokenValidityDuration, "REFRESH_TOKEN_TTL")
	flagx.EnvString(&config.S3AccessKey, "S3_ACCESS_KEY_ID")
	flagx.EnvString(&config.S3SecretKey, "S3_SECRET_ACCESS_KEY")
	flagx.EnvString(&config.S3Bucket, "S3_BUCKET")
	flagx.EnvString(&config.S3Region, "S3_REGION")
	flagx.EnvString(&config.S3BaseEndpoint, "S3_ENDPOINT")
	flagx.EnvString(&config.S3PublicBaseURL, "S3_PUBLIC_URL")
	flagx.EnvString(&config.PublishableAPIKey, "MEDUSA_PUBLISHABLE_KEY")
	flagx.EnvList(&config.CORSOrigins, "STORE_CORS")
	flagx.EnvString(&config.SendGridAPIKey, "SENDGRID_API_KEY")
	flagx.EnvString(&config.MailFrom, "SENDGRID_FROM")
	flagx.EnvString(&config.SiteURL, "SITE_URL")
	flagx.EnvString(&config.LogLevel, "LOG_LEVEL")
	flagx.EnvString(&config.BootstrapOperatorEmail, "CMS_ADMIN_EMAIL")
	flagx.EnvString(&config.BootstrapOperatorPassword, "CMS_ADMIN_PASSWORD")
}
