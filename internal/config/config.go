package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendFirebase Backend = "firebase"
	BackendPostgres Backend = "postgres"
)

const (
	defaultPort          = "8080"
	defaultAdminPassword = "12346"
	defaultHTTPTimeout   = 15 * time.Second
	devSessionSecret     = "shopyz-dev-secret"
)

type Config struct {
	AppEnv  string
	AppPort string

	RealtimeBackend Backend
	FirebaseURL     string
	FirebaseAuth    string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr string

	AdminPassword string
	SessionSecret string

	HTTPTimeout    time.Duration
	CORSOrigins    []string
	ExportLocation *time.Location
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:          os.Getenv("APP_ENV"),
		AppPort:         getenv("APP_PORT", defaultPort),
		RealtimeBackend: Backend(getenv("REALTIME_BACKEND", string(BackendMemory))),
		FirebaseURL:     os.Getenv("FIREBASE_DATABASE_URL"),
		FirebaseAuth:    os.Getenv("FIREBASE_AUTH"),
		DBHost:          os.Getenv("DB_HOST"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		DBPort:          getenv("DB_PORT", "5432"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		AdminPassword:   getenv("ADMIN_PASSWORD", defaultAdminPassword),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		HTTPTimeout:     defaultHTTPTimeout,
		CORSOrigins:     splitList(getenv("CORS_ORIGINS", "*")),
		ExportLocation:  time.UTC,
	}

	if raw := os.Getenv("HTTP_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTimeout, raw)
		}
		cfg.HTTPTimeout = d
	}

	if tz := os.Getenv("EXPORT_TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
		}
		cfg.ExportLocation = loc
	}

	switch cfg.RealtimeBackend {
	case BackendMemory:
	case BackendFirebase:
		if cfg.FirebaseURL == "" {
			return nil, ErrMissingFirebaseURL
		}
	case BackendPostgres:
		if cfg.DBHost == "" || cfg.DBName == "" {
			return nil, ErrMissingDatabase
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.RealtimeBackend)
	}

	if cfg.SessionSecret == "" {
		if cfg.IsProduction() {
			return nil, ErrMissingSecret
		}
		cfg.SessionSecret = devSessionSecret
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
