package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultModel   = "gemini-flash-latest"
	DefaultDataDir = "./data"
	DefaultTimeout = 60 * time.Second
)

// Config holds the runtime settings, read from the environment and an optional .env file
type Config struct {
	APIKey          string
	Model           string
	DataDir         string
	MaxHighPriority int
	Timeout         time.Duration
}

// LoadConfig loads envFile (a missing file is not an error) into the process
// environment without overriding variables already set, then reads the config.
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		APIKey:          os.Getenv("GOOGLE_API_KEY"),
		Model:           getEnv("INBOX_MODEL", DefaultModel),
		DataDir:         getEnv("INBOX_DATA_DIR", DefaultDataDir),
		MaxHighPriority: DefaultMaxHighPriority,
		Timeout:         DefaultTimeout,
	}

	if v := os.Getenv("INBOX_MAX_HIGH_PRIORITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid INBOX_MAX_HIGH_PRIORITY %q: must be a positive integer", v)
		}
		cfg.MaxHighPriority = n
	}

	if v := os.Getenv("INBOX_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid INBOX_TIMEOUT %q: %w", v, err)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}

// DBPath is the event log location inside the data directory
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "events.db")
}

// InboxDir is where processed inputs are archived
func (c *Config) InboxDir() string {
	return filepath.Join(c.DataDir, "inbox")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
