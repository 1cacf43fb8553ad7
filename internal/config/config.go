package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

var validEnvs = map[string]bool{
	"local": true,
	"alpha": true,
	"beta":  true,
	"prod":  true,
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
	StoreDriverMemory   = "memory"
)

var validStoreDrivers = map[string]bool{
	StoreDriverPostgres: true,
	StoreDriverSQLite:   true,
	StoreDriverMemory:   true,
}

type Config struct {
	ServerPort  string
	AppEnv      string
	LogLevel    string
	StoreDriver string
	SQLitePath  string
	Timezone    string
	DB          DBConfig
}

func (c Config) ParseLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Location resolves TIMEZONE. "Local" and "" both mean the host zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("invalid SERVER_PORT %q: %w", c.ServerPort, err)
	}
	if !validEnvs[c.AppEnv] {
		return fmt.Errorf("invalid APP_ENV %q: must be one of local, alpha, beta, prod", c.AppEnv)
	}
	if !validStoreDrivers[c.StoreDriver] {
		return fmt.Errorf("invalid STORE_DRIVER %q: must be one of postgres, sqlite, memory", c.StoreDriver)
	}
	if c.StoreDriver == StoreDriverMemory && c.AppEnv == "prod" {
		return fmt.Errorf("STORE_DRIVER=memory must not be used in %s environment", c.AppEnv)
	}
	if c.StoreDriver == StoreDriverSQLite && c.SQLitePath == "" {
		return fmt.Errorf("SQLITE_PATH is required when STORE_DRIVER=sqlite")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (d DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     d.Name,
		RawQuery: fmt.Sprintf("sslmode=%s", url.QueryEscape(d.SSLMode)),
	}
	return u.String()
}

func Load() Config {
	return Config{
		ServerPort:  envOrDefault("SERVER_PORT", "8080"),
		AppEnv:      envOrDefault("APP_ENV", "local"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		StoreDriver: strings.ToLower(envOrDefault("STORE_DRIVER", StoreDriverPostgres)),
		SQLitePath:  envOrDefault("SQLITE_PATH", "./data/reminders.db"),
		Timezone:    envOrDefault("TIMEZONE", "Local"),
		DB: DBConfig{
			Host:     envOrDefault("DB_HOST", "localhost"),
			Port:     envOrDefault("DB_PORT", "5432"),
			User:     envOrDefault("DB_USER", "reminder"),
			Password: envOrDefault("DB_PASSWORD", "reminder"),
			Name:     envOrDefault("DB_NAME", "reminder"),
			SSLMode:  envOrDefault("DB_SSLMODE", "disable"),
		},
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
