package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvBackend, EnvStoragePath, EnvRedisURL, EnvPixabayKey, EnvLogLevel} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage.Backend != "dir" {
		t.Fatalf("Backend = %q, want dir", cfg.Storage.Backend)
	}
	wantPath, err := expandPath(defaultDirPath)
	if err != nil {
		t.Fatalf("expandPath(defaultDirPath) returned error: %v", err)
	}
	if cfg.Storage.Path != wantPath {
		t.Fatalf("Storage.Path = %q, want %q", cfg.Storage.Path, wantPath)
	}
	if cfg.Pixabay.BaseURL != defaultPixabayURL || cfg.Pixabay.APIKey != "" {
		t.Fatalf("Pixabay = %+v, want default base url and no key", cfg.Pixabay)
	}
	if cfg.Upload.MaxDimension != defaultMaxDimension {
		t.Fatalf("MaxDimension = %d, want %d", cfg.Upload.MaxDimension, defaultMaxDimension)
	}
	if cfg.Log.Level != "info" || !strings.HasPrefix(cfg.Log.File, home) {
		t.Fatalf("Log = %+v, want info level and file under HOME", cfg.Log)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	path := writeConfig(t, `
[storage]
backend = "  SQLite "
path = "  ~/photos/folio.db  "

[pixabay]
api_key = " abc123 "
base_url = "http://localhost:9999"

[upload]
max_dimension = 1024

[log]
level = "DEBUG"
file = "~/logs/folio.log"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Fatalf("Backend = %q, want sqlite", cfg.Storage.Backend)
	}
	if cfg.Storage.Path != filepath.Join(home, "photos/folio.db") {
		t.Fatalf("Storage.Path = %q, want under HOME", cfg.Storage.Path)
	}
	if cfg.Pixabay.APIKey != "abc123" || cfg.Pixabay.BaseURL != "http://localhost:9999" {
		t.Fatalf("Pixabay = %+v", cfg.Pixabay)
	}
	if cfg.Upload.MaxDimension != 1024 {
		t.Fatalf("MaxDimension = %d, want 1024", cfg.Upload.MaxDimension)
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != filepath.Join(home, "logs/folio.log") {
		t.Fatalf("Log = %+v", cfg.Log)
	}
}

func TestLoad_SQLiteDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	cfg, err := Load(writeConfig(t, "[storage]\nbackend = \"sqlite\"\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want, _ := expandPath(defaultSQLitePath)
	if cfg.Storage.Path != want {
		t.Fatalf("Storage.Path = %q, want %q", cfg.Storage.Path, want)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	cfg, err := Load(writeConfig(t, `
[storage]
backend = "   "
path = ""
[log]
level = " "
`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	def := Default()
	if cfg.Storage != def.Storage || cfg.Log != def.Log {
		t.Fatalf("cfg = %+v, want defaults %+v", cfg, def)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)
	t.Setenv(EnvBackend, "redis")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/2")
	t.Setenv(EnvPixabayKey, "from-env")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load(writeConfig(t, `
[storage]
backend = "dir"
[pixabay]
api_key = "from-file"
`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage.Backend != "redis" || cfg.Storage.RedisURL != "redis://localhost:6379/2" {
		t.Fatalf("Storage = %+v, want redis from env", cfg.Storage)
	}
	if cfg.Pixabay.APIKey != "from-env" {
		t.Fatalf("APIKey = %q, want from-env", cfg.Pixabay.APIKey)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	if strings.Contains(cfg.String(), "from-env") {
		t.Fatalf("String() leaks API key: %s", cfg.String())
	}
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad toml", `storage = [`, "parse config"},
		{"unknown backend", "[storage]\nbackend = \"s3\"\n", "storage.backend"},
		{"redis without url", "[storage]\nbackend = \"redis\"\n", "redis_url"},
		{"negative dimension", "[upload]\nmax_dimension = -1\n", "max_dimension"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatalf("Load returned nil error, want %s", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %q, want it to mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PIXABAY_API_KEY=dotenv-key\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv(EnvPixabayKey) })

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv returned error: %v", err)
	}
	if got := os.Getenv(EnvPixabayKey); got != "dotenv-key" {
		t.Fatalf("PIXABAY_API_KEY = %q, want dotenv-key", got)
	}
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv(missing) returned error: %v", err)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
