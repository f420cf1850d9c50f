package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"

	"github.com/jasperwreed/sidebar/internal/sidebar"
)

// Validator provides methods for validating CLI inputs
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateWindow checks the row window of a headless render
func (v *Validator) ValidateWindow(offset, height int) error {
	if offset < 0 {
		return fmt.Errorf("--offset must not be negative")
	}
	if height <= 0 {
		return fmt.Errorf("--height must be positive")
	}
	return nil
}

// ValidateLocale checks that a locale identifier parses
func (v *Validator) ValidateLocale(locale string) error {
	if locale == "" {
		return nil // Empty locale is allowed, will use default
	}
	if _, err := language.Parse(locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return nil
}

// ValidatePlatform checks a platform name
func (v *Validator) ValidatePlatform(platform string) (sidebar.Platform, error) {
	switch p := sidebar.Platform(platform); p {
	case sidebar.PlatformWeb, sidebar.PlatformDesktop, sidebar.PlatformIOS, sidebar.PlatformAndroid:
		return p, nil
	}
	return "", fmt.Errorf("unknown platform %q (want web, desktop, ios or android)", platform)
}

// ParseIDs splits a comma separated id list, dropping blanks
func (v *Validator) ParseIDs(list string) []string {
	var ids []string
	for _, id := range strings.Split(list, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// ValidateDirectory checks if a directory path is valid
func (v *Validator) ValidateDirectory(path string) error {
	if path == "" {
		return nil // Empty path is allowed, will use default
	}

	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("invalid directory: %w", err)
	}

	if !stat.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	return nil
}

// ValidateFile checks if a file path is valid and exists
func (v *Validator) ValidateFile(path string) error {
	if path == "" {
		return fmt.Errorf("file path cannot be empty")
	}

	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("file not found: %w", err)
	}

	if stat.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	return nil
}

// ResolvePath resolves a path to an absolute path
func (v *Validator) ResolvePath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if path == "." {
		return os.Getwd()
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}

	if filepath.IsAbs(path) {
		return path, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	return filepath.Join(cwd, path), nil
}

// GetWatchDirectory resolves and checks the update feed directory
func (v *Validator) GetWatchDirectory(dir string) (string, error) {
	resolvedDir, err := v.ResolvePath(dir)
	if err != nil {
		return "", err
	}

	if err := v.ValidateDirectory(resolvedDir); err != nil {
		return "", fmt.Errorf("invalid watch directory: %w", err)
	}

	return resolvedDir, nil
}
