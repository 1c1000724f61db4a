package config

const (
	EnvPrefix = "URBANTHREADS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv   = "URBANTHREADS_APP_ENV"
	EnvPort     = "URBANTHREADS_APP_PORT"
	EnvLogLevel = "URBANTHREADS_LOG_LEVEL"

	EnvDBDSN  = "URBANTHREADS_DB_DSN"
	EnvDBHost = "URBANTHREADS_DB_HOST"
	EnvDBUser = "URBANTHREADS_DB_USER"
	EnvDBName = "URBANTHREADS_DB_NAME"
	EnvDBPort = "URBANTHREADS_DB_PORT"

	EnvRedisURL = "URBANTHREADS_REDIS_URL"

	EnvJWTSecret              = "URBANTHREADS_JWT_SECRET"
	EnvJWTIssuer              = "URBANTHREADS_JWT_ISSUER"
	EnvJWTExpMins             = "URBANTHREADS_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "URBANTHREADS_REFRESH_TOKEN_TTL_MINUTES"

	EnvInvoiceDir  = "URBANTHREADS_INVOICE_DIR"
	EnvCORSOrigins = "URBANTHREADS_CORS_ALLOWED_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
