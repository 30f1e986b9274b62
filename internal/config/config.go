package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds folio's runtime settings.
type Config struct {
	Storage Storage
	Pixabay Pixabay
	Upload  Upload
	Log     Log
}

// Storage selects the kv backend.
type Storage struct {
	Backend  string
	Path     string
	RedisURL string
}

// Pixabay configures stock photo search.
type Pixabay struct {
	APIKey  string
	BaseURL string
}

// Upload bounds the images accepted from disk.
type Upload struct {
	MaxDimension int
}

// Log configures the application log.
type Log struct {
	Level string
	File  string
}

const (
	defaultConfigPath   = "~/.config/folio/config.toml"
	defaultBackend      = "dir"
	defaultDirPath      = "~/.local/share/folio/store"
	defaultSQLitePath   = "~/.local/share/folio/folio.db"
	defaultPixabayURL   = "https://pixabay.com"
	defaultMaxDimension = 2000
	defaultLogLevel     = "info"
	defaultLogFile      = "~/.local/state/folio/folio.log"
)

// Environment variables that override file values.
const (
	EnvBackend     = "FOLIO_STORAGE_BACKEND"
	EnvStoragePath = "FOLIO_STORAGE_PATH"
	EnvRedisURL    = "FOLIO_REDIS_URL"
	EnvPixabayKey  = "PIXABAY_API_KEY"
	EnvLogLevel    = "FOLIO_LOG_LEVEL"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Storage: Storage{Backend: defaultBackend, Path: mustExpand(defaultDirPath)},
		Pixabay: Pixabay{BaseURL: defaultPixabayURL},
		Upload:  Upload{MaxDimension: defaultMaxDimension},
		Log:     Log{Level: defaultLogLevel, File: mustExpand(defaultLogFile)},
	}
}

// LoadDotEnv loads KEY=value pairs from a .env file into the environment.
// Variables already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load parses the config file at path, falling back to defaults when it is
// missing, then applies environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw rawConfig
	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	raw.applyEnv()
	return raw.resolve()
}

type rawConfig struct {
	Storage struct {
		Backend  string `toml:"backend"`
		Path     string `toml:"path"`
		RedisURL string `toml:"redis_url"`
	} `toml:"storage"`
	Pixabay struct {
		APIKey  string `toml:"api_key"`
		BaseURL string `toml:"base_url"`
	} `toml:"pixabay"`
	Upload struct {
		MaxDimension int `toml:"max_dimension"`
	} `toml:"upload"`
	Log struct {
		Level string `toml:"level"`
		File  string `toml:"file"`
	} `toml:"log"`
}

func (r *rawConfig) applyEnv() {
	r.Storage.Backend = getEnv(EnvBackend, r.Storage.Backend)
	r.Storage.Path = getEnv(EnvStoragePath, r.Storage.Path)
	r.Storage.RedisURL = getEnv(EnvRedisURL, r.Storage.RedisURL)
	r.Pixabay.APIKey = getEnv(EnvPixabayKey, r.Pixabay.APIKey)
	r.Log.Level = getEnv(EnvLogLevel, r.Log.Level)
}

func (r rawConfig) resolve() (Config, error) {
	cfg := Default()

	backend := strings.ToLower(strings.TrimSpace(r.Storage.Backend))
	if backend != "" {
		cfg.Storage.Backend = backend
	}
	switch cfg.Storage.Backend {
	case "dir", "sqlite", "redis", "memory":
	default:
		return Config{}, fmt.Errorf("storage.backend %q: want dir, sqlite, redis or memory", r.Storage.Backend)
	}

	storagePath := strings.TrimSpace(r.Storage.Path)
	if storagePath == "" && cfg.Storage.Backend == "sqlite" {
		storagePath = defaultSQLitePath
	}
	if storagePath != "" {
		cfg.Storage.Path = mustExpand(storagePath)
	}
	cfg.Storage.RedisURL = strings.TrimSpace(r.Storage.RedisURL)
	if cfg.Storage.Backend == "redis" && cfg.Storage.RedisURL == "" {
		return Config{}, fmt.Errorf("storage.redis_url is required for the redis backend")
	}

	cfg.Pixabay.APIKey = strings.TrimSpace(r.Pixabay.APIKey)
	if base := strings.TrimSpace(r.Pixabay.BaseURL); base != "" {
		cfg.Pixabay.BaseURL = base
	}

	if r.Upload.MaxDimension < 0 {
		return Config{}, fmt.Errorf("upload.max_dimension %d: must not be negative", r.Upload.MaxDimension)
	}
	if r.Upload.MaxDimension > 0 {
		cfg.Upload.MaxDimension = r.Upload.MaxDimension
	}

	if level := strings.ToLower(strings.TrimSpace(r.Log.Level)); level != "" {
		cfg.Log.Level = level
	}
	if file := strings.TrimSpace(r.Log.File); file != "" {
		cfg.Log.File = mustExpand(file)
	}
	return cfg, nil
}

// String summarises the config for logging without the API key.
func (c Config) String() string {
	return "backend=" + c.Storage.Backend +
		" path=" + c.Storage.Path +
		" pixabay_key=" + strconv.FormatBool(c.Pixabay.APIKey != "") +
		" max_dimension=" + strconv.Itoa(c.Upload.MaxDimension) +
		" log_level=" + c.Log.Level
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

// ExpandPath resolves a leading tilde and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}
