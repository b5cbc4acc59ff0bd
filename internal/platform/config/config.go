package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port string

	StorageBackend   string
	DatabaseURL      string
	DatabaseName     string
	SQLitePath       string
	PostgresMaxConns int32

	LogMode  string
	LogLevel string
	LogFile  string

	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

// Load reads the given dotenv files (default ".env") when they exist, then
// the environment. Variables already set in the environment win.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return LoadFromEnv()
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		Port:               "8080",
		StorageBackend:     BackendMemory,
		DatabaseURL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DatabaseName:       strings.TrimSpace(os.Getenv("DATABASE_NAME")),
		SQLitePath:         "gear-catalog.db",
		LogMode:            "development",
		LogLevel:           "info",
		LogFile:            strings.TrimSpace(os.Getenv("LOG_FILE")),
		CORSAllowedOrigins: []string{"*"},
		ShutdownTimeout:    10 * time.Second,
	}

	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if _, err := strconv.ParseUint(v, 10, 16); err != nil {
			return Config{}, fmt.Errorf("PORT must be a port number (e.g. 8080): %w", err)
		}
		cfg.Port = v
	}
	if v := strings.TrimSpace(os.Getenv("STORAGE_BACKEND")); v != "" {
		switch v {
		case BackendMemory, BackendPostgres, BackendSQLite:
			cfg.StorageBackend = v
		default:
			return Config{}, fmt.Errorf("STORAGE_BACKEND must be one of memory, postgres, sqlite (got %q)", v)
		}
	}
	if cfg.StorageBackend == BackendPostgres && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing required env var: DATABASE_URL (STORAGE_BACKEND=postgres)")
	}
	if v := strings.TrimSpace(os.Getenv("SQLITE_PATH")); v != "" {
		cfg.SQLitePath = v
	}
	if v := strings.TrimSpace(os.Getenv("POSTGRES_MAX_CONNS")); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("POSTGRES_MAX_CONNS must be a positive integer (got %q)", v)
		}
		cfg.PostgresMaxConns = int32(n)
	}
	if v := strings.TrimSpace(os.Getenv("LOG_MODE")); v != "" {
		cfg.LogMode = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); strings.TrimSpace(v) != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.CORSAllowedOrigins = origins
		}
	}
	if v := strings.TrimSpace(os.Getenv("SHUTDOWN_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT must be a duration (e.g. 10s): %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	return cfg, nil
}
