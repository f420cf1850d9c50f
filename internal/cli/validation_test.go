package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jasperwreed/sidebar/internal/sidebar"
)

func TestValidator_ValidateWindow(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		offset  int
		height  int
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid window",
			offset: 0,
			height: 10,
		},
		{
			name:    "negative offset",
			offset:  -1,
			height:  10,
			wantErr: true,
			errMsg:  "--offset must not be negative",
		},
		{
			name:    "zero height",
			offset:  3,
			height:  0,
			wantErr: true,
			errMsg:  "--height must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateWindow(tt.offset, tt.height)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWindow() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Errorf("ValidateWindow() error message = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestValidator_ValidateLocale(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		locale  string
		wantErr bool
	}{
		{name: "empty", locale: ""},
		{name: "english", locale: "en"},
		{name: "regional spanish", locale: "es-MX"},
		{name: "garbage", locale: "not a locale!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateLocale(tt.locale)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLocale(%q) error = %v, wantErr %v", tt.locale, err, tt.wantErr)
			}
		})
	}
}

func TestValidator_ValidatePlatform(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		platform string
		want     sidebar.Platform
		wantErr  bool
	}{
		{name: "desktop", platform: "desktop", want: sidebar.PlatformDesktop},
		{name: "android", platform: "android", want: sidebar.PlatformAndroid},
		{name: "unknown", platform: "tv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.ValidatePlatform(tt.platform)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePlatform() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ValidatePlatform() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidator_ParseIDs(t *testing.T) {
	v := NewValidator()

	got := v.ParseIDs(" a, b,,c ,")
	want := []string{"a", "b", "c"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("ParseIDs() = %v, want %v", got, want)
	}
	if ids := v.ParseIDs(""); len(ids) != 0 {
		t.Errorf("ParseIDs(\"\") = %v, want empty", ids)
	}
}

func TestValidator_ValidateDirectory(t *testing.T) {
	v := NewValidator()

	tempDir := t.TempDir()
	tempFile := filepath.Join(tempDir, "testfile.txt")
	if err := os.WriteFile(tempFile, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid directory",
			path: tempDir,
		},
		{
			name: "empty path allowed",
			path: "",
		},
		{
			name:    "file instead of directory",
			path:    tempFile,
			wantErr: true,
			errMsg:  "path is not a directory",
		},
		{
			name:    "non-existent path",
			path:    "/non/existent/path/that/should/not/exist",
			wantErr: true,
			errMsg:  "invalid directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateDirectory(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDirectory() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("ValidateDirectory() error message = %v, want to contain %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestValidator_ValidateFile(t *testing.T) {
	v := NewValidator()

	tempDir := t.TempDir()
	tempFile := filepath.Join(tempDir, "updates.jsonl")
	if err := os.WriteFile(tempFile, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid file",
			path: tempFile,
		},
		{
			name:    "empty path",
			path:    "",
			wantErr: true,
			errMsg:  "file path cannot be empty",
		},
		{
			name:    "directory instead of file",
			path:    tempDir,
			wantErr: true,
			errMsg:  "path is a directory, not a file",
		},
		{
			name:    "non-existent file",
			path:    "/non/existent/file.jsonl",
			wantErr: true,
			errMsg:  "file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFile() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("ValidateFile() error message = %v, want to contain %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestValidator_ResolvePath(t *testing.T) {
	v := NewValidator()

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "empty path", path: "", want: ""},
		{name: "current directory", path: ".", want: cwd},
		{name: "absolute path", path: "/usr/local/bin", want: "/usr/local/bin"},
		{name: "relative path", path: "subdir", want: filepath.Join(cwd, "subdir")},
		{name: "home path", path: "~/feeds", want: filepath.Join(home, "feeds")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.ResolvePath(tt.path)
			if err != nil {
				t.Fatalf("ResolvePath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolvePath() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidator_GetWatchDirectory(t *testing.T) {
	v := NewValidator()

	tempDir := t.TempDir()
	got, err := v.GetWatchDirectory(tempDir)
	if err != nil {
		t.Fatalf("GetWatchDirectory() error = %v", err)
	}
	if got != tempDir {
		t.Errorf("GetWatchDirectory() = %v, want %v", got, tempDir)
	}

	if _, err := v.GetWatchDirectory(filepath.Join(tempDir, "missing")); err == nil {
		t.Error("GetWatchDirectory() expected error for missing directory")
	} else if !strings.Contains(err.Error(), "invalid watch directory") {
		t.Errorf("GetWatchDirectory() error = %v", err)
	}
}
