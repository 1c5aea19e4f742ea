package service

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

const envPrefix = "BLOG_"

// Config holds runtime settings. Every flag falls back to a BLOG_*
// environment variable and then to a built-in default.
type Config struct {
	Addr            string
	DBPath          string
	SessionDir      string
	BackupDir       string
	SessionTTL      time.Duration
	LogLevel        string
	Dev             bool
	SecureCookies   bool
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LoadConfig parses args for the given command.
func LoadConfig(name string, args []string, output io.Writer) (*Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}

	var (
		addr            = fs.String("addr", getEnv(envPrefix+"ADDR", ":5000"), "listen address")
		dbPath          = fs.String("db", getEnv(envPrefix+"DB_PATH", "data/blog.db"), "sqlite database file")
		sessionDir      = fs.String("sessions", getEnv(envPrefix+"SESSION_DIR", "data/sessions"), "badger session directory")
		backupDir       = fs.String("backups", getEnv(envPrefix+"BACKUP_DIR", "data/backups"), "backup directory")
		sessionTTL      = fs.Duration("session-ttl", getEnvDuration(envPrefix+"SESSION_TTL", 24*time.Hour), "session lifetime")
		logLevel        = fs.String("log-level", getEnv(envPrefix+"LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
		dev             = fs.Bool("dev", getEnvBool(envPrefix+"DEV", false), "development logging")
		secureCookies   = fs.Bool("secure-cookies", getEnvBool(envPrefix+"SECURE_COOKIES", false), "mark session cookies Secure")
		readTimeout     = fs.Duration("read-timeout", getEnvDuration(envPrefix+"READ_TIMEOUT", 10*time.Second), "HTTP read timeout")
		writeTimeout    = fs.Duration("write-timeout", getEnvDuration(envPrefix+"WRITE_TIMEOUT", 15*time.Second), "HTTP write timeout")
		shutdownTimeout = fs.Duration("shutdown-timeout", getEnvDuration(envPrefix+"SHUTDOWN_TIMEOUT", 10*time.Second), "graceful shutdown timeout")
	)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{
		Addr:            *addr,
		DBPath:          *dbPath,
		SessionDir:      *sessionDir,
		BackupDir:       *backupDir,
		SessionTTL:      *sessionTTL,
		LogLevel:        *logLevel,
		Dev:             *dev,
		SecureCookies:   *secureCookies,
		ReadTimeout:     *readTimeout,
		WriteTimeout:    *writeTimeout,
		ShutdownTimeout: *shutdownTimeout,
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("session-ttl must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db path must not be empty")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
