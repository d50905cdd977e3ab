package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Session      SessionConfig
	OAuth        OAuthConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"PEDIDOS_APP_ENV" required:"true"`
	Port         string `envconfig:"PEDIDOS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"PEDIDOS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PEDIDOS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PEDIDOS_DB_DSN"`
	Driver string `envconfig:"PEDIDOS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PEDIDOS_DB_HOST"`
	LegacyPort     int    `envconfig:"PEDIDOS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PEDIDOS_DB_USER"`
	LegacyPassword string `envconfig:"PEDIDOS_DB_PASSWORD"`
	LegacyName     string `envconfig:"PEDIDOS_DB_NAME"`
	LegacySSLMode  string `envconfig:"PEDIDOS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PEDIDOS_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"PEDIDOS_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"PEDIDOS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PEDIDOS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"PEDIDOS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PEDIDOS_REDIS_ADDR"`
	Password     string        `envconfig:"PEDIDOS_REDIS_PASSWORD"`
	DB           int           `envconfig:"PEDIDOS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PEDIDOS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PEDIDOS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PEDIDOS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PEDIDOS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PEDIDOS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"PEDIDOS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"PEDIDOS_JWT_ISSUER" default:"pedidos"`
	ExpirationMinutes int    `envconfig:"PEDIDOS_JWT_EXPIRATION_MINUTES" default:"525600"`
}

// TokenTTL returns the access token lifetime. Sessions are cookie-bound and
// long lived; revocation happens through the Redis session registry.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type SessionConfig struct {
	CookieName   string `envconfig:"PEDIDOS_SESSION_COOKIE_NAME" default:"pedidos_session"`
	CookieSecure bool   `envconfig:"PEDIDOS_SESSION_COOKIE_SECURE" default:"true"`
	CookieDomain string `envconfig:"PEDIDOS_SESSION_COOKIE_DOMAIN"`
}

type OAuthConfig struct {
	ServerURL   string `envconfig:"PEDIDOS_OAUTH_SERVER_URL"`
	AppID       string `envconfig:"PEDIDOS_OAUTH_APP_ID"`
	AppSecret   string `envconfig:"PEDIDOS_OAUTH_APP_SECRET"`
	OwnerOpenID string `envconfig:"PEDIDOS_OWNER_OPEN_ID"`
}

// Configured reports whether the OAuth provider has been wired up. Dev
// deployments can run on the dev login endpoint alone.
func (o OAuthConfig) Configured() bool {
	return strings.TrimSpace(o.ServerURL) != ""
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"PEDIDOS_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PEDIDOS_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required when the sqlite driver is selected", EnvDBDSN)
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
