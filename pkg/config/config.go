package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Reconcile ReconcileConfig
	Telemetry TelemetryConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name        string
	Env         string
	Host        string
	Port        string
	CORSOrigins string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxOpenConns   int
	MaxIdleConns   int
	ConnMaxLifeSec int
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// ReconcileConfig schedules the consistency sweep.
type ReconcileConfig struct {
	Enabled bool
	Cron    string
}

// TelemetryConfig controls the audit event pipeline.
type TelemetryConfig struct {
	QueueName        string
	Workers          int
	EnqueueTimeoutMS int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "job-board-api"),
			Env:         getEnv("APP_ENV", "development"),
			Host:        getEnv("APP_HOST", "0.0.0.0"),
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxOpenConns:   getEnvAsInt("POSTGRES_MAX_OPEN_CONNS", 25),
			MaxIdleConns:   getEnvAsInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifeSec: getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASS"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             os.Getenv("JWT_SECRET"),
			AccessTokenTTLMinutes: getEnvAsInt("JWT_ACCESS_TOKEN_TTL_MINUTES", 30),
			BcryptCost:            getEnvAsInt("BCRYPT_COST", 12),
		},
		Reconcile: ReconcileConfig{
			Enabled: getEnvAsBool("RECONCILE_ENABLED", true),
			Cron:    getEnv("RECONCILE_CRON", "@every 10m"),
		},
		Telemetry: TelemetryConfig{
			QueueName:        getEnv("TELEMETRY_QUEUE", "abtest:events"),
			Workers:          getEnvAsInt("TELEMETRY_WORKERS", 2),
			EnqueueTimeoutMS: getEnvAsInt("TELEMETRY_ENQUEUE_TIMEOUT_MS", 200),
		},
	}

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required")
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// IsProduction reports whether the service runs with production settings.
func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

// AccessTokenTTL returns the JWT lifetime.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	if a.AccessTokenTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

// EnqueueTimeout bounds how long a request waits on the event queue.
func (t TelemetryConfig) EnqueueTimeout() time.Duration {
	if t.EnqueueTimeoutMS <= 0 {
		return 200 * time.Millisecond
	}
	return time.Duration(t.EnqueueTimeoutMS) * time.Millisecond
}

// ConnMaxLifetime returns the pool connection lifetime.
func (p PostgresConfig) ConnMaxLifetime() time.Duration {
	return time.Duration(p.ConnMaxLifeSec) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
