package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jasperwreed/sidebar/internal/sidebar"
	"github.com/jasperwreed/sidebar/internal/storage"
)

// AppConfig is the on-disk configuration. Fields left out of the file keep
// their defaults.
type AppConfig struct {
	Sidebar  *sidebar.Config `json:"sidebar"`
	Storage  *storage.Config `json:"storage"`
	WatchDir string          `json:"watch_dir"`
	LogFile  string          `json:"log_file"`
	Locale   string          `json:"locale"`
	Mode     sidebar.Mode    `json:"mode"`
}

// DefaultAppConfig returns default application configuration
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Sidebar: sidebar.DefaultConfig(),
		Storage: storage.DefaultConfig(),
		Locale:  "en",
		Mode:    sidebar.ModeDefault,
	}
}

// loadConfig reads path over the defaults. An empty path falls back to
// ~/.sidebar/config.json when that file exists.
func loadConfig(path string) (*AppConfig, error) {
	config := DefaultAppConfig()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return config, nil
		}
		candidate := filepath.Join(home, ".sidebar", "config.json")
		if _, err := os.Stat(candidate); err != nil {
			return config, nil
		}
		path = candidate
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// A section written as null keeps the defaults.
	if config.Sidebar == nil {
		config.Sidebar = sidebar.DefaultConfig()
	}
	if config.Storage == nil {
		config.Storage = storage.DefaultConfig()
	}
	mode, err := sidebar.ParseMode(string(config.Mode))
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	config.Mode = mode
	if err := config.Sidebar.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sidebar config: %w", err)
	}

	return config, nil
}

// openStore opens the database named by --db, or the configured one.
func openStore(config *AppConfig) (*storage.SQLiteStore, error) {
	storeConfig := *config.Storage
	if dbPath != "" {
		storeConfig.Path = dbPath
	}
	store, err := storage.NewSQLiteStoreWithConfig(&storeConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}

// newLogger builds the key/value logger every command writes to.
func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "sidebar",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	}), nil
}

// openLogFile opens the browse log, creating its directory.
func openLogFile(path string) (*os.File, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, ".sidebar", "sidebar.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
