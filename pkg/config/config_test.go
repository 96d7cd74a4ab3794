package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, uint32(365), cfg.Storage.MaxRetentionDays)
	assert.True(t, cfg.Storage.AutoArchive)
	assert.Equal(t, 10, cfg.Display.MaxHistoryShown)
	assert.Equal(t, LanguageAuto, cfg.Display.Language)
	assert.Equal(t, TUIInteractive, cfg.Display.TUIMode)
	assert.False(t, cfg.Display.AltScreen)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	t.Run("zero retention", func(t *testing.T) {
		cfg := Default()
		cfg.Storage.MaxRetentionDays = 0
		assert.Error(t, cfg.Validate())
	})
	t.Run("unknown tui mode", func(t *testing.T) {
		cfg := Default()
		cfg.Display.TUIMode = "fancy"
		assert.Error(t, cfg.Validate())
	})
	t.Run("mode is case insensitive", func(t *testing.T) {
		cfg := Default()
		cfg.Display.TUIMode = "Simple"
		assert.NoError(t, cfg.Validate())
	})
}

func TestLoad_MissingFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = os.Stat(path)
	require.NoError(t, err, "defaults should be written back")

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := "[storage]\nmax_retention_days = 30\nauto_archive = false\n\n[display]\nalt_screen = true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(30), cfg.Storage.MaxRetentionDays)
	assert.False(t, cfg.Storage.AutoArchive)
	assert.True(t, cfg.Display.AltScreen)
	assert.Equal(t, 10, cfg.Display.MaxHistoryShown)
	assert.Equal(t, TUIInteractive, cfg.Display.TUIMode)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[storage\nbroken"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := Default()
	cfg.Display.Language = "zh"
	cfg.Display.TUIMode = TUISimple

	require.NoError(t, Save(path, cfg))
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestEffectiveLanguage(t *testing.T) {
	tests := []struct {
		name     string
		language string
		lang     string
		want     string
	}{
		{"explicit wins", "zh", "en_US.UTF-8", "zh"},
		{"auto strips encoding", LanguageAuto, "zh_CN.UTF-8", "zh_CN"},
		{"auto without encoding", LanguageAuto, "fr_FR", "fr_FR"},
		{"auto unset", LanguageAuto, "", "en_US"},
		{"empty behaves as auto", "", "de_DE.UTF-8", "de_DE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Display.Language = tt.language
			assert.Equal(t, tt.want, cfg.EffectiveLanguage(env(map[string]string{"LANG": tt.lang})))
		})
	}
}

func TestResolveTUI(t *testing.T) {
	tests := []struct {
		name       string
		mode       string
		alt        bool
		vars       map[string]string
		wantSimple bool
		wantAlt    bool
	}{
		{"file defaults", TUIInteractive, false, nil, false, false},
		{"file simple", TUISimple, true, nil, true, true},
		{"env forces simple", TUIInteractive, false, map[string]string{"DT_TUI": "simple"}, true, false},
		{"env zero forces simple", TUIInteractive, false, map[string]string{"DT_TUI": "0"}, true, false},
		{"env FALSE forces simple", TUIInteractive, false, map[string]string{"DT_TUI": "FALSE"}, true, false},
		{"env other forces interactive", TUISimple, false, map[string]string{"DT_TUI": "1"}, false, false},
		{"env enables alt screen", TUIInteractive, false, map[string]string{"DT_ALT_SCREEN": "yes"}, false, true},
		{"env disables alt screen", TUIInteractive, true, map[string]string{"DT_ALT_SCREEN": "false"}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Display.TUIMode = tt.mode
			cfg.Display.AltScreen = tt.alt
			simple, alt := cfg.ResolveTUI(env(tt.vars))
			assert.Equal(t, tt.wantSimple, simple)
			assert.Equal(t, tt.wantAlt, alt)
		})
	}
}

func TestResolveRoot(t *testing.T) {
	dir := t.TempDir()
	root, err := ResolveRoot(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, root)

	def, err := ResolveRoot("")
	require.NoError(t, err)
	assert.Equal(t, ".dt", filepath.Base(def))
}
