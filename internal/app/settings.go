// Package app resolves process-level settings: database location, API keys
// and log level.
package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvDBPath     = "SERVINGS_DB"
	EnvUSDAAPIKey = "SERVINGS_USDA_API_KEY"
	EnvLogLevel   = "SERVINGS_LOG_LEVEL"
)

// Settings are resolved with precedence flag > environment > .env file >
// default. The default database is <user config dir>/servings/servings.db.
type Settings struct {
	DBPath     string
	USDAAPIKey string
	LogLevel   slog.Level
}

// LoadDotEnv reads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ResolveSettings combines explicit flag values with the environment. Empty
// flag values fall through.
func ResolveSettings(dbFlag, logLevelFlag string) (Settings, error) {
	s := Settings{
		DBPath:     firstSet(dbFlag, os.Getenv(EnvDBPath)),
		USDAAPIKey: strings.TrimSpace(os.Getenv(EnvUSDAAPIKey)),
	}
	if s.DBPath == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Settings{}, fmt.Errorf("resolve user config dir: %w", err)
		}
		s.DBPath = filepath.Join(base, "servings", "servings.db")
	}
	level, err := ParseLogLevel(firstSet(logLevelFlag, os.Getenv(EnvLogLevel)))
	if err != nil {
		return Settings{}, err
	}
	s.LogLevel = level
	return s, nil
}

// ParseLogLevel accepts debug, info, warn or error. Empty means warn.
func ParseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return slog.LevelWarn, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q (expected debug, info, warn, or error)", value)
	}
}

// NewLogger returns a text logger writing to w at level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
