// Package config provides the typed dt configuration, its TOML persistence
// and the environment overrides that take precedence over the file.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

const (
	// TUIInteractive runs the raw-mode picker.
	TUIInteractive = "interactive"
	// TUISimple runs the line-oriented selector.
	TUISimple = "simple"

	// LanguageAuto derives the language from $LANG.
	LanguageAuto = "auto"

	// FileName is the config file name inside the data directory.
	FileName = "config.toml"

	defaultRetentionDays   = 365
	defaultMaxHistoryShown = 10
)

// Config is the full dt configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Display DisplayConfig `toml:"display"`
}

// StorageConfig controls retention and archival of records.
type StorageConfig struct {
	MaxRetentionDays uint32 `toml:"max_retention_days"`
	AutoArchive      bool   `toml:"auto_archive"`
}

// DisplayConfig controls the terminal surfaces.
type DisplayConfig struct {
	MaxHistoryShown int    `toml:"max_history_shown"`
	Language        string `toml:"language"`
	TUIMode         string `toml:"tui_mode"`
	AltScreen       bool   `toml:"alt_screen"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			MaxRetentionDays: defaultRetentionDays,
			AutoArchive:      true,
		},
		Display: DisplayConfig{
			MaxHistoryShown: defaultMaxHistoryShown,
			Language:        LanguageAuto,
			TUIMode:         TUIInteractive,
			AltScreen:       false,
		},
	}
}

// Validate reports configuration values the tool cannot work with.
func (c *Config) Validate() error {
	if c.Storage.MaxRetentionDays == 0 {
		return fmt.Errorf("storage.max_retention_days must be positive")
	}
	if c.Display.MaxHistoryShown < 0 {
		return fmt.Errorf("display.max_history_shown must not be negative, got %d", c.Display.MaxHistoryShown)
	}
	switch strings.ToLower(c.Display.TUIMode) {
	case TUIInteractive, TUISimple:
	default:
		return fmt.Errorf("display.tui_mode must be %q or %q, got %q", TUIInteractive, TUISimple, c.Display.TUIMode)
	}
	return nil
}

// EffectiveLanguage resolves "auto" against $LANG, e.g. "zh_CN.UTF-8" becomes
// "zh_CN". An unset $LANG means "en_US".
func (c *Config) EffectiveLanguage(getenv func(string) string) string {
	if c.Display.Language != "" && c.Display.Language != LanguageAuto {
		return c.Display.Language
	}
	lang := getenv("LANG")
	if lang == "" {
		lang = "en_US"
	}
	if i := strings.IndexByte(lang, '.'); i >= 0 {
		lang = lang[:i]
	}
	if lang == "" {
		return "en"
	}
	return lang
}

// ResolveTUI combines the file settings with DT_TUI and DT_ALT_SCREEN.
// A set variable always wins over the file.
func (c *Config) ResolveTUI(getenv func(string) string) (simple bool, altScreen bool) {
	simple = strings.EqualFold(c.Display.TUIMode, TUISimple)
	if v, ok := lookup(getenv, "DT_TUI"); ok {
		simple = v == "0" || v == "false" || v == "simple"
	}

	altScreen = c.Display.AltScreen
	if v, ok := lookup(getenv, "DT_ALT_SCREEN"); ok {
		altScreen = !(v == "0" || v == "false")
	}
	return simple, altScreen
}

func lookup(getenv func(string) string, name string) (string, bool) {
	v := getenv(name)
	if v == "" {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(v)), true
}

// DefaultRoot returns ~/.dt.
func DefaultRoot() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".dt"), nil
}

// ResolveRoot returns the data directory, honouring an explicit override.
// A leading "~" in the override is expanded.
func ResolveRoot(override string) (string, error) {
	if override == "" {
		return DefaultRoot()
	}
	expanded, err := homedir.Expand(override)
	if err != nil {
		return "", fmt.Errorf("failed to expand data directory %q: %w", override, err)
	}
	return filepath.Abs(expanded)
}
