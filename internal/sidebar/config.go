package sidebar

import (
	"fmt"
	"time"
)

// Mode is the display density of the list.
type Mode string

const (
	ModeDefault Mode = "default"
	ModeCompact Mode = "compact"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDefault, ModeCompact:
		return Mode(s), nil
	case "":
		return ModeDefault, nil
	}
	return "", fmt.Errorf("unknown render mode %q (want %q or %q)", s, ModeDefault, ModeCompact)
}

// Platform identifies the host the list runs on. Web and desktop hosts
// position the list by row index at mount; the others restore a pixel
// offset after layout.
type Platform string

const (
	PlatformWeb     Platform = "web"
	PlatformDesktop Platform = "desktop"
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

// UsesIndexPositioning reports whether the host supports an initial row index.
func (p Platform) UsesIndexPositioning() bool {
	return p == PlatformWeb || p == PlatformDesktop
}

// Config holds the list engine settings
type Config struct {
	DefaultRowHeight  float64       `json:"default_row_height"`
	CompactRowHeight  float64       `json:"compact_row_height"`
	ViewportItemCount int           `json:"viewport_item_count"`
	Platform          Platform      `json:"platform"`
	AttentionTooltip  string        `json:"attention_tooltip"`
	FrameInterval     time.Duration `json:"frame_interval"`
}

// DefaultConfig returns default list configuration
func DefaultConfig() *Config {
	return &Config{
		DefaultRowHeight:  64,
		CompactRowHeight:  52,
		ViewportItemCount: 20,
		Platform:          PlatformDesktop,
		AttentionTooltip:  "gbrRbrChat",
		FrameInterval:     16 * time.Millisecond,
	}
}

// RowHeight returns the estimated height of one row in the given mode.
func (c *Config) RowHeight(mode Mode) float64 {
	if mode == ModeCompact {
		return c.CompactRowHeight
	}
	return c.DefaultRowHeight
}

// EstimatedViewportHeight is the height hint handed to the renderer.
func (c *Config) EstimatedViewportHeight(mode Mode) float64 {
	return c.RowHeight(mode) * float64(c.ViewportItemCount)
}

// Validate rejects settings the engine cannot work with.
func (c *Config) Validate() error {
	if c.DefaultRowHeight <= 0 || c.CompactRowHeight <= 0 {
		return fmt.Errorf("row heights must be positive (default=%v, compact=%v)", c.DefaultRowHeight, c.CompactRowHeight)
	}
	if c.ViewportItemCount <= 0 {
		return fmt.Errorf("viewport item count must be positive, got %d", c.ViewportItemCount)
	}
	switch c.Platform {
	case PlatformWeb, PlatformDesktop, PlatformIOS, PlatformAndroid:
	default:
		return fmt.Errorf("unknown platform %q", c.Platform)
	}
	return nil
}
