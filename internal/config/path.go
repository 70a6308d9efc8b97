// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// DefaultDatabasePath is where the reference collection lives when no
// path is configured.
func DefaultDatabasePath() string {
	return ExpandPath("$HOME/.local/share/ridgeline/ridgeline.db")
}

// DefaultBlobRoot is the local blob directory used when object storage is
// not configured.
func DefaultBlobRoot() string {
	return ExpandPath("$HOME/.local/share/ridgeline/blobs")
}
