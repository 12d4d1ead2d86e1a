package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iksnae/gitter-session/testutil"
)

// isolateConfig points HOME and the working directory at empty temp dirs and
// clears the token environment
func isolateConfig(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", testutil.CreateTempDir(t))
	for _, key := range []string{tokenEnv, apiURLEnv} {
		// Setenv restores the original value on cleanup; unset so .env can supply it
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	dir := testutil.CreateTempDir(t)
	testutil.Chdir(t, dir)
	return dir
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	dir := isolateConfig(t)
	path := testutil.CreateConfigFixture(t, filepath.Join(dir, "conf"), "file-token",
		"poll_interval: 2s",
		"fetch_limit: 30",
		"request_timeout: 4s",
		"api_url: http://localhost:9999/v1/",
	)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Token != "file-token" {
		t.Errorf("Token = %q, want file-token", cfg.Token)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Errorf("PollInterval = %v, want 2s", cfg.PollInterval)
	}
	if cfg.FetchLimit != 30 {
		t.Errorf("FetchLimit = %d, want 30", cfg.FetchLimit)
	}
	if cfg.RequestTimeout != 4*time.Second {
		t.Errorf("RequestTimeout = %v, want 4s", cfg.RequestTimeout)
	}
	if cfg.APIURL != "http://localhost:9999/v1" {
		t.Errorf("APIURL = %q, want trailing slash trimmed", cfg.APIURL)
	}
	if cfg.TickInterval != DefaultTickInterval {
		t.Errorf("TickInterval = %v, want default %v", cfg.TickInterval, DefaultTickInterval)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
}

func TestLoadConfig_HomeDirectory(t *testing.T) {
	isolateConfig(t)
	testutil.CreateHomeFixture(t, "home-token")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Token != "home-token" {
		t.Errorf("Token = %q, want home-token", cfg.Token)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %q, want default", cfg.APIURL)
	}
	if cfg.PollInterval != DefaultPollInterval || cfg.FetchLimit != DefaultFetchLimit || cfg.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadConfig_WorkingDirectory(t *testing.T) {
	dir := isolateConfig(t)
	testutil.CreateConfigFixture(t, dir, "cwd-token")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Token != "cwd-token" {
		t.Errorf("Token = %q, want cwd-token", cfg.Token)
	}
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	dir := isolateConfig(t)
	path := testutil.CreateConfigFixture(t, dir, "file-token")
	t.Setenv(tokenEnv, "env-token")
	t.Setenv(apiURLEnv, "http://127.0.0.1:1/v1")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Token != "env-token" {
		t.Errorf("Token = %q, want env-token", cfg.Token)
	}
	if cfg.APIURL != "http://127.0.0.1:1/v1" {
		t.Errorf("APIURL = %q, want env value", cfg.APIURL)
	}
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := isolateConfig(t)
	testutil.WriteFixture(t, dir, ".env", []byte("GITTER_TOKEN=dotenv-token\n"))

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Token != "dotenv-token" {
		t.Errorf("Token = %q, want dotenv-token", cfg.Token)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, dir string) string
		wantErr error
		field   string
	}{
		{
			name:    "no token anywhere",
			setup:   func(t *testing.T, dir string) string { return "" },
			wantErr: ErrNoToken,
			field:   "token",
		},
		{
			name: "blank token",
			setup: func(t *testing.T, dir string) string {
				return testutil.CreateConfigFixture(t, dir, "   ")
			},
			wantErr: ErrNoToken,
			field:   "token",
		},
		{
			name: "missing explicit file",
			setup: func(t *testing.T, dir string) string {
				return filepath.Join(dir, "missing.yaml")
			},
			field: "file",
		},
		{
			name: "invalid yaml",
			setup: func(t *testing.T, dir string) string {
				return testutil.WriteFixture(t, dir, "bad.yaml", []byte("token: [unclosed\n"))
			},
			field: "file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolateConfig(t)
			path := tt.setup(t, dir)

			_, err := LoadConfig(path)
			if err == nil {
				t.Fatal("LoadConfig() error = nil, want error")
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("LoadConfig() error = %v, want *ConfigError", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("ConfigError.Field = %q, want %q", cfgErr.Field, tt.field)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
