// Package prefs handles folio user preferences persistence.
// Preferences are stored in ~/.config/folio/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences for folio.
type Prefs struct {
	DarkTheme  string `toml:"dark_theme"`
	LightTheme string `toml:"light_theme"`
	LastView   string `toml:"last_view"`
}

const (
	defaultPrefsPath  = "~/.config/folio/prefs.toml"
	defaultDarkTheme  = "Nightfox"
	defaultLightTheme = "Dayfox"
	defaultLastView   = "all"
)

// Default returns the preferences used when no file exists.
func Default() Prefs {
	return Prefs{DarkTheme: defaultDarkTheme, LightTheme: defaultLightTheme, LastView: defaultLastView}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Theme returns the theme name for the given display mode.
func (p Prefs) Theme(dark bool) string {
	if dark {
		return p.DarkTheme
	}
	return p.LightTheme
}

// WithTheme returns p with the theme for the given mode replaced.
func (p Prefs) WithTheme(dark bool, name string) Prefs {
	if dark {
		p.DarkTheme = name
	} else {
		p.LightTheme = name
	}
	return p
}

// Load reads preferences from the given path, falling back to defaults if missing.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Default(), nil
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Default(), nil // Graceful degradation
	}

	var prefs Prefs
	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Default(), nil // Graceful degradation
	}

	def := Default()
	if strings.TrimSpace(prefs.DarkTheme) == "" {
		prefs.DarkTheme = def.DarkTheme
	}
	if strings.TrimSpace(prefs.LightTheme) == "" {
		prefs.LightTheme = def.LightTheme
	}
	if strings.TrimSpace(prefs.LastView) == "" {
		prefs.LastView = def.LastView
	}

	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
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
