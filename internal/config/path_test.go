package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("failed to get home dir: %v", err)
	}
	t.Setenv("RIDGELINE_TEST_DIR", "/tmp/ridgeline")

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "empty", path: "", want: ""},
		{name: "plain path untouched", path: "/var/lib/db.sqlite", want: "/var/lib/db.sqlite"},
		{name: "tilde prefix", path: "~/data/db.sqlite", want: filepath.Join(home, "data/db.sqlite")},
		{name: "bare tilde", path: "~", want: home},
		{name: "env var", path: "$RIDGELINE_TEST_DIR/db.sqlite", want: "/tmp/ridgeline/db.sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.path); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestDefaultPaths(t *testing.T) {
	db := DefaultDatabasePath()
	if !strings.HasSuffix(db, filepath.Join("ridgeline", "ridgeline.db")) {
		t.Errorf("DefaultDatabasePath() = %q", db)
	}
	if strings.Contains(db, "$") {
		t.Errorf("DefaultDatabasePath() left variables unexpanded: %q", db)
	}

	blobs := DefaultBlobRoot()
	if !strings.HasSuffix(blobs, filepath.Join("ridgeline", "blobs")) {
		t.Errorf("DefaultBlobRoot() = %q", blobs)
	}
}
