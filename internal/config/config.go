package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"chore-coin-go/pkg/logger"
)

const EnvDevelopment = "development"

type Config struct {
	HTTPPort string
	Env      string
	DB       DBConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Redis    RedisConfig
	Passcode PasscodeConfig
	Login    LoginConfig
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	TxMaxRetries    int
}

type AuthConfig struct {
	JWTSecret         string
	TokenTTL          time.Duration
	GoogleClientID    string
	GoogleCertsURL    string
	GoogleHTTPTimeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// RedisConfig with an empty Addr disables the shared attempt limiter.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PasscodeConfig struct {
	MaxAttempts   int
	AttemptWindow time.Duration
	Iterations    int
}

type LoginConfig struct {
	RatePerSecond int
	Burst         int
}

func Load(log logger.Logger) (Config, error) {
	if err := loadDotEnv(log); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		Env:      getEnv("ENV", EnvDevelopment),
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", getEnv("DATABASE_URL", "")),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "chore_coin"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			TxMaxRetries:    getEnvInt("TX_MAX_RETRIES", 3),
		},
		Auth: AuthConfig{
			JWTSecret:         getEnv("JWT_SECRET", ""),
			TokenTTL:          getEnvDuration("JWT_TTL", 24*time.Hour),
			GoogleClientID:    getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleCertsURL:    getEnv("GOOGLE_CERTS_URL", "https://www.googleapis.com/oauth2/v3/certs"),
			GoogleHTTPTimeout: getEnvDuration("GOOGLE_HTTP_TIMEOUT", 5*time.Second),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Passcode: PasscodeConfig{
			MaxAttempts:   getEnvInt("PASSCODE_MAX_ATTEMPTS", 5),
			AttemptWindow: getEnvDuration("PASSCODE_ATTEMPT_WINDOW", 15*time.Minute),
			Iterations:    getEnvInt("PASSCODE_ITERATIONS", 100_000),
		},
		Login: LoginConfig{
			RatePerSecond: getEnvInt("LOGIN_RATE_PER_SECOND", 5),
			Burst:         getEnvInt("LOGIN_RATE_BURST", 10),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		if cfg.Env != EnvDevelopment {
			return Config{}, errors.New("JWT_SECRET is required")
		}
		log.Warn("config: JWT_SECRET not set, using development secret")
		cfg.Auth.JWTSecret = "development-secret"
	}

	return cfg, nil
}

func (c Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
