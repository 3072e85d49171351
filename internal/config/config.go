package config

import (
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session store backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	ShutdownTimeout time.Duration
	LogLevel        string

	SessionSecret        string
	SessionTTL           time.Duration
	SessionStore         string
	SessionSweepInterval time.Duration
	CookieSecure         bool
	CookieSameSite       string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CORSAllowedOrigins []string
	OTLPEndpoint       string
}

const (
	defaultRunAddress           = ":3000"
	defaultSessionSecret        = "secret123"
	defaultSessionTTL           = time.Hour
	defaultSessionSweepInterval = time.Minute
	defaultShutdownTimeout      = 10 * time.Second
	defaultLogLevel             = "info"
	defaultCookieSameSite       = "lax"
	defaultRedisAddr            = "127.0.0.1:6379"
	defaultCORSOrigins          = "*"
)

// Load parses configuration from an optional .env file, environment variables and flags.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           runAddress(lookup),
		DatabaseURI:          getString(lookup, "DATABASE_URI", buildDatabaseURI(lookup)),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:             getString(lookup, "LOG_LEVEL", defaultLogLevel),
		SessionSecret:        getString(lookup, "SESSION_SECRET", defaultSessionSecret),
		SessionTTL:           getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		SessionStore:         getString(lookup, "SESSION_STORE", SessionStoreMemory),
		SessionSweepInterval: getDuration(lookup, "SESSION_SWEEP_INTERVAL", defaultSessionSweepInterval),
		CookieSecure:         getBool(lookup, "COOKIE_SECURE", false),
		CookieSameSite:       getString(lookup, "COOKIE_SAMESITE", defaultCookieSameSite),
		RedisAddr:            getString(lookup, "REDIS_ADDR", defaultRedisAddr),
		RedisPassword:        getString(lookup, "REDIS_PASSWORD", ""),
		RedisDB:              getInt(lookup, "REDIS_DB", 0),
		OTLPEndpoint:         getString(lookup, "OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
	origins := getString(lookup, "CORS_ALLOWED_ORIGINS", defaultCORSOrigins)

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		sessionTTLStr      = cfg.SessionTTL.String()
		sweepIntervalStr   = cfg.SessionSweepInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Secret for signing session cookies")
	fs.StringVar(&cfg.SessionStore, "session-store", cfg.SessionStore, "Session store backend (memory|redis)")
	fs.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Absolute session lifetime")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between expired session sweeps")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "Redis address for the redis session store")
	fs.StringVar(&origins, "cors-origins", origins, "Comma separated list of trusted origins")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	if cfg.SessionSweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("SESSION_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read session secret file: %w", err)
		}
		cfg.SessionSecret = strings.TrimSpace(string(content))
	}

	cfg.CORSAllowedOrigins = splitList(origins)

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.SessionSweepInterval <= 0 {
		cfg.SessionSweepInterval = defaultSessionSweepInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	cfg.SessionStore = strings.ToLower(strings.TrimSpace(cfg.SessionStore))
	switch cfg.SessionStore {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("session secret must not be empty")
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

// runAddress honours RUN_ADDRESS first and falls back to a bare PORT.
func runAddress(lookup envLookup) string {
	if v, ok := lookup("RUN_ADDRESS"); ok && v != "" {
		return v
	}
	if port, ok := lookup("PORT"); ok && port != "" {
		return ":" + port
	}
	return defaultRunAddress
}

// buildDatabaseURI assembles a DSN from DB_* variables. Returns "" when DB_NAME is unset.
func buildDatabaseURI(lookup envLookup) string {
	name := getString(lookup, "DB_NAME", "")
	if name == "" {
		return ""
	}
	host := getString(lookup, "DB_HOST", "127.0.0.1")
	port := getString(lookup, "DB_PORT", "5432")
	user := getString(lookup, "DB_USER", "postgres")
	pass := getString(lookup, "DB_PASS", "")
	ssl := getString(lookup, "DB_SSLMODE", "disable")

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, pass),
		Host:     host + ":" + port,
		Path:     "/" + name,
		RawQuery: "sslmode=" + url.QueryEscape(ssl),
	}
	return u.String()
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
