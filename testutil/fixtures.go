package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CreateConfigFixture writes a config.yaml with the given token (and any
// extra "key: value" lines) into dir and returns its path
func CreateConfigFixture(t *testing.T, dir, token string, extra ...string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create config directory: %v", err)
	}

	var b strings.Builder
	if token != "" {
		fmt.Fprintf(&b, "token: %q\n", token)
	}
	for _, line := range extra {
		b.WriteString(line)
		b.WriteString("\n")
	}

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		t.Fatalf("Failed to write config fixture: %v", err)
	}
	return path
}

// CreateHomeFixture creates a fake home directory holding .gitter_gtk/config.yaml
// and points HOME at it for the duration of the test
func CreateHomeFixture(t *testing.T, token string) string {
	t.Helper()
	home := CreateTempDir(t)
	CreateConfigFixture(t, filepath.Join(home, ".gitter_gtk"), token)
	t.Setenv("HOME", home)
	return home
}
