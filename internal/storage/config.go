package storage

import (
	"fmt"
	"time"
)

// Config holds database configuration settings
type Config struct {
	Path            string        `json:"path"`
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`
	BusyTimeout     time.Duration `json:"busy_timeout"`
	CacheSizeKB     int           `json:"cache_size_kb"`
}

// DefaultConfig returns default database configuration
func DefaultConfig() *Config {
	return &Config{
		MaxOpenConns:    5,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
		BusyTimeout:     5 * time.Second,
		CacheSizeKB:     16000,
	}
}

// pragmas returns SQLite PRAGMA statements based on configuration
func (c *Config) pragmas() []string {
	return []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = memory",
		"PRAGMA busy_timeout = " + formatInt(int(c.BusyTimeout.Milliseconds())),
		"PRAGMA cache_size = -" + formatInt(c.CacheSizeKB),
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
