// Package config loads server settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"

	platformstrings "amparo/pkg/platform/strings"
)

// Server captures everything the binaries need to start.
type Server struct {
	Addr            string        `mapstructure:"AMPARO_ADDR"`
	DatabaseURL     string        `mapstructure:"DATABASE_URL"`
	MigrateOnStart  bool          `mapstructure:"MIGRATE_ON_START"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
	Timezone        string        `mapstructure:"TZ_NAME"`

	JWTSigningKey string        `mapstructure:"JWT_SIGNING_KEY"`
	JWTIssuer     string        `mapstructure:"JWT_ISSUER"`
	JWTTTL        time.Duration `mapstructure:"JWT_TTL"`

	LoginMaxAttempts int           `mapstructure:"LOGIN_MAX_ATTEMPTS"`
	LoginWindow      time.Duration `mapstructure:"LOGIN_WINDOW"`
	LoginLockout     time.Duration `mapstructure:"LOGIN_LOCKOUT"`

	BootstrapUsername string `mapstructure:"BOOTSTRAP_ADMIN_USERNAME"`
	BootstrapPassword string `mapstructure:"BOOTSTRAP_ADMIN_PASSWORD"`

	Redis RedisConfig `mapstructure:",squash"`

	KafkaBrokers string        `mapstructure:"KAFKA_BROKERS"`
	AuditTopic   string        `mapstructure:"AUDIT_TOPIC"`
	RelayBatch   int           `mapstructure:"RELAY_BATCH_SIZE"`
	RelayPoll    time.Duration `mapstructure:"RELAY_POLL_INTERVAL"`
	RelayAddr    string        `mapstructure:"RELAY_METRICS_ADDR"`

	MetricsToken string `mapstructure:"METRICS_TOKEN"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	Env       string `mapstructure:"APP_ENV"`
}

// RedisConfig configures the optional revocation store. An empty URL keeps
// revocations in memory.
type RedisConfig struct {
	URL          string        `mapstructure:"REDIS_URL"`
	PoolSize     int           `mapstructure:"REDIS_POOL_SIZE"`
	MinIdleConns int           `mapstructure:"REDIS_MIN_IDLE_CONNS"`
	DialTimeout  time.Duration `mapstructure:"REDIS_DIAL_TIMEOUT"`
	ReadTimeout  time.Duration `mapstructure:"REDIS_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"REDIS_WRITE_TIMEOUT"`
}

const devSigningKey = "dev-secret-key-change-in-production"

// Load reads .env when present, then the environment. Environment variables
// win over the file.
func Load() (*Server, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()

	v.SetDefault("AMPARO_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("MIGRATE_ON_START", false)
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("TZ_NAME", "America/Sao_Paulo")
	v.SetDefault("JWT_SIGNING_KEY", devSigningKey)
	v.SetDefault("JWT_ISSUER", "amparo")
	v.SetDefault("JWT_TTL", "8h")
	v.SetDefault("LOGIN_MAX_ATTEMPTS", 5)
	v.SetDefault("LOGIN_WINDOW", "15m")
	v.SetDefault("LOGIN_LOCKOUT", "15m")
	v.SetDefault("BOOTSTRAP_ADMIN_USERNAME", "")
	v.SetDefault("BOOTSTRAP_ADMIN_PASSWORD", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_MIN_IDLE_CONNS", 2)
	v.SetDefault("REDIS_DIAL_TIMEOUT", "5s")
	v.SetDefault("REDIS_READ_TIMEOUT", "3s")
	v.SetDefault("REDIS_WRITE_TIMEOUT", "3s")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("AUDIT_TOPIC", "amparo.audit")
	v.SetDefault("RELAY_BATCH_SIZE", 100)
	v.SetDefault("RELAY_POLL_INTERVAL", "2s")
	v.SetDefault("RELAY_METRICS_ADDR", ":9091")
	v.SetDefault("METRICS_TOKEN", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("APP_ENV", "development")

	var cfg Server
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Addr == "" {
		return nil, errors.New("config: AMPARO_ADDR must be set")
	}
	if cfg.JWTTTL <= 0 {
		return nil, errors.New("config: JWT_TTL must be positive")
	}
	if cfg.Env == "production" && cfg.JWTSigningKey == devSigningKey {
		return nil, errors.New("config: JWT_SIGNING_KEY must be set when APP_ENV=production")
	}
	if (cfg.BootstrapUsername == "") != (cfg.BootstrapPassword == "") {
		return nil, errors.New("config: BOOTSTRAP_ADMIN_USERNAME and BOOTSTRAP_ADMIN_PASSWORD must be set together")
	}
	return &cfg, nil
}

// Location resolves the configured timezone. Calendar dates (ages, "today",
// delivery days) are computed in it.
func (c *Server) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Brokers splits the comma-separated broker list.
func (c *Server) Brokers() []string {
	if c == nil {
		return nil
	}
	return platformstrings.SplitList(c.KafkaBrokers, ",")
}
