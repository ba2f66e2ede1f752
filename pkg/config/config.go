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
	Rewards       RewardsConfig
	FeatureFlags  FeatureFlagsConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	Outbox        OutboxConfig
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
	Env          string `envconfig:"BLITZ_APP_ENV" required:"true"`
	Port         string `envconfig:"BLITZ_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BLITZ_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BLITZ_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BLITZ_DB_DSN"`
	Driver string `envconfig:"BLITZ_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BLITZ_DB_HOST"`
	LegacyPort     int    `envconfig:"BLITZ_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BLITZ_DB_USER"`
	LegacyPassword string `envconfig:"BLITZ_DB_PASSWORD"`
	LegacyName     string `envconfig:"BLITZ_DB_NAME"`
	LegacySSLMode  string `envconfig:"BLITZ_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BLITZ_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BLITZ_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BLITZ_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BLITZ_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BLITZ_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BLITZ_REDIS_ADDR"`
	Password     string        `envconfig:"BLITZ_REDIS_PASSWORD"`
	DB           int           `envconfig:"BLITZ_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BLITZ_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BLITZ_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BLITZ_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BLITZ_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BLITZ_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"BLITZ_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"BLITZ_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"BLITZ_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"BLITZ_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BLITZ_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BLITZ_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BLITZ_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BLITZ_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BLITZ_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow       time.Duration `envconfig:"BLITZ_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginNameLimit    int           `envconfig:"BLITZ_AUTH_RATE_LIMIT_LOGIN_NAME_LIMIT" default:"5"`
	LoginIPLimit      int           `envconfig:"BLITZ_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow    time.Duration `envconfig:"BLITZ_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterNameLimit int           `envconfig:"BLITZ_AUTH_RATE_LIMIT_REGISTER_NAME_LIMIT" default:"3"`
	RegisterIPLimit   int           `envconfig:"BLITZ_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// RewardsConfig controls the leaderboard bonus cutoff. The bonus amount
// itself is a tariff constant, not configuration.
type RewardsConfig struct {
	BonusTopN int `envconfig:"BLITZ_REWARDS_BONUS_TOP_N" default:"1"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BLITZ_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID       string `envconfig:"BLITZ_GCP_PROJECT_ID"`
	CredentialsJSON string `envconfig:"BLITZ_GCP_CREDENTIALS_JSON"`
}

type PubSubConfig struct {
	OrderEventsTopic string `envconfig:"BLITZ_PUBSUB_ORDER_EVENTS_TOPIC" default:"blitz-order-events"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"BLITZ_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"BLITZ_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"BLITZ_OUTBOX_MAX_ATTEMPTS" default:"10"`
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
