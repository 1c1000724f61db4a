package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Idempotency   IdempotencyConfig
	FeatureFlags  FeatureFlagsConfig
	CORS          CORSConfig
	Invoice       InvoiceConfig
	Metrics       MetricsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"URBANTHREADS_APP_ENV" required:"true"`
	Port         string `envconfig:"URBANTHREADS_APP_PORT" default:"8080"`
	Name         string `envconfig:"URBANTHREADS_APP_NAME" default:"urbanthreads-api"`
	LogLevel     string `envconfig:"URBANTHREADS_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"URBANTHREADS_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"URBANTHREADS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"URBANTHREADS_DB_DSN"`
	Driver string `envconfig:"URBANTHREADS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"URBANTHREADS_DB_HOST"`
	LegacyPort     int    `envconfig:"URBANTHREADS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"URBANTHREADS_DB_USER"`
	LegacyPassword string `envconfig:"URBANTHREADS_DB_PASSWORD"`
	LegacyName     string `envconfig:"URBANTHREADS_DB_NAME"`
	LegacySSLMode  string `envconfig:"URBANTHREADS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"URBANTHREADS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"URBANTHREADS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"URBANTHREADS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"URBANTHREADS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"URBANTHREADS_REDIS_URL"`
	Address      string        `envconfig:"URBANTHREADS_REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"URBANTHREADS_REDIS_PASSWORD"`
	DB           int           `envconfig:"URBANTHREADS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"URBANTHREADS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"URBANTHREADS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"URBANTHREADS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"URBANTHREADS_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"URBANTHREADS_REDIS_WRITE_TIMEOUT" default:"3s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"URBANTHREADS_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"URBANTHREADS_JWT_ISSUER" default:"urbanthreads"`
	ExpirationMinutes      int    `envconfig:"URBANTHREADS_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"URBANTHREADS_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"URBANTHREADS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"URBANTHREADS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"URBANTHREADS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"URBANTHREADS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"URBANTHREADS_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"URBANTHREADS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"URBANTHREADS_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"URBANTHREADS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"URBANTHREADS_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"URBANTHREADS_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"URBANTHREADS_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// IdempotencyConfig controls how long replayable order placement responses are kept.
type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"URBANTHREADS_IDEMPOTENCY_TTL" default:"24h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"URBANTHREADS_AUTO_MIGRATE" default:"false"`
	SkipRedis   bool `envconfig:"URBANTHREADS_SKIP_REDIS" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"URBANTHREADS_CORS_ALLOWED_ORIGINS" default:"*"`
}

type InvoiceConfig struct {
	Dir         string `envconfig:"URBANTHREADS_INVOICE_DIR" default:"invoices"`
	CompanyName string `envconfig:"URBANTHREADS_INVOICE_COMPANY_NAME" default:"URBAN THREADS"`
	Tagline     string `envconfig:"URBANTHREADS_INVOICE_TAGLINE" default:"Premium Clothing for Modern Life"`
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"URBANTHREADS_METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"URBANTHREADS_METRICS_PATH" default:"/metrics"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
