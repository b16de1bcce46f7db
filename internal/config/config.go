package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Engine       EngineConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
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

// EngineConfig holds the engine's tunable rule constants. The fallback
// days and recovery bumps are observed product behavior; they live here so
// tuning them does not require a code change.
type EngineConfig struct {
	FallbackDaysHigh     int
	FallbackDaysMedium   int
	FallbackDaysLow      int
	ReopenBumpDays       int
	ResumeBumpDays       int
	SweepIntervalSeconds int
	DefaultPriority      domain.TicketPriority
}

// NotificationConfig configures the fire-and-forget notification sink.
type NotificationConfig struct {
	RedisChannel string
}

// Load reads configuration from environment variables, applying defaults
// where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	defaultPriority := domain.TicketPriority(getEnv("ENGINE_DEFAULT_PRIORITY", string(domain.TicketPriorityMedium)))
	if !domain.ValidPriority(defaultPriority) {
		return nil, fmt.Errorf("invalid ENGINE_DEFAULT_PRIORITY: %q", defaultPriority)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "facility-maintenance-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Engine: EngineConfig{
			FallbackDaysHigh:     getEnvAsInt("ENGINE_FALLBACK_DAYS_HIGH", 1),
			FallbackDaysMedium:   getEnvAsInt("ENGINE_FALLBACK_DAYS_MEDIUM", 3),
			FallbackDaysLow:      getEnvAsInt("ENGINE_FALLBACK_DAYS_LOW", 7),
			ReopenBumpDays:       getEnvAsInt("ENGINE_REOPEN_BUMP_DAYS", 3),
			ResumeBumpDays:       getEnvAsInt("ENGINE_RESUME_BUMP_DAYS", 2),
			SweepIntervalSeconds: getEnvAsInt("ENGINE_SWEEP_INTERVAL_SECONDS", 60),
			DefaultPriority:      defaultPriority,
		},
		Notification: NotificationConfig{
			RedisChannel: getEnv("NOTIFY_REDIS_CHANNEL", "maintenance:events"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// FallbackDays builds the per-priority due-date fallback table.
func (e EngineConfig) FallbackDays() map[domain.TicketPriority]int {
	return map[domain.TicketPriority]int{
		domain.TicketPriorityHigh:   e.FallbackDaysHigh,
		domain.TicketPriorityMedium: e.FallbackDaysMedium,
		domain.TicketPriorityLow:    e.FallbackDaysLow,
	}
}

// SweepInterval returns the background sweep cadence.
func (e EngineConfig) SweepInterval() time.Duration {
	if e.SweepIntervalSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(e.SweepIntervalSeconds) * time.Second
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
