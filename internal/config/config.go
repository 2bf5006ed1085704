package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sadopc/taskflow/internal/store"
)

type Config struct {
	DBPath      string
	RedisAddr   string
	RedisPrefix string
	LogPath     string
	ExportDir   string
}

// Load reads the optional env file (".env" when envFile is empty) and then the
// TASKFLOW_* environment. Variables already set in the environment win.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	dbPath := getEnv("TASKFLOW_DB", "")
	if dbPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return Config{}, fmt.Errorf("resolve database path: %w", err)
		}
		dbPath = p
	}

	exportDir := getEnv("TASKFLOW_EXPORT_DIR", "")
	if exportDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		exportDir = home
	}

	cfg := Config{
		DBPath:      dbPath,
		RedisAddr:   getEnv("TASKFLOW_REDIS_ADDR", ""),
		RedisPrefix: getEnv("TASKFLOW_REDIS_PREFIX", "taskflow:"),
		LogPath:     getEnv("TASKFLOW_LOG", ""),
		ExportDir:   exportDir,
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	// The shell expands ~, godotenv does not.
	if strings.HasPrefix(c.DBPath, "~") {
		return fmt.Errorf("TASKFLOW_DB must not start with ~, got %q", c.DBPath)
	}
	if c.RedisAddr != "" && !strings.Contains(c.RedisAddr, ":") {
		return fmt.Errorf("TASKFLOW_REDIS_ADDR must be host:port, got %q", c.RedisAddr)
	}
	return nil
}

// UsesRedis reports whether task state lives in Redis instead of SQLite.
func (c Config) UsesRedis() bool { return c.RedisAddr != "" }

func getEnv(key, defaultVal string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultVal
}
