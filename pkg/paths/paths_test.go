package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("explicit_game_dir", func(t *testing.T) {
		dir := t.TempDir()

		p, err := New(dir)
		require.NoError(t, err)

		assert.Equal(t, dir, p.GameDir())
		assert.False(t, p.UsedFallback())
	})

	t.Run("env_game_dir", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(EnvGameDir, dir)

		p, err := New("")
		require.NoError(t, err)

		assert.Equal(t, dir, p.GameDir())
		assert.False(t, p.UsedFallback())
	})

	t.Run("falls_back_to_cwd", func(t *testing.T) {
		t.Setenv(EnvGameDir, "")
		cwd, err := os.Getwd()
		require.NoError(t, err)

		p, err := New("")
		require.NoError(t, err)

		assert.Equal(t, cwd, p.GameDir())
		assert.True(t, p.UsedFallback())
	})
}

func TestDirectoryOverrides(t *testing.T) {
	configDir := t.TempDir()
	stateDir := t.TempDir()
	t.Setenv(EnvConfigDir, configDir)
	t.Setenv(EnvStateDir, stateDir)

	p, err := New(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, configDir, p.ConfigDir())
	assert.Equal(t, filepath.Join(configDir, ConfigFileName), p.ConfigFile())
	assert.Equal(t, filepath.Join(stateDir, LogFileName), p.LogFilePath())
	assert.Equal(t, filepath.Join(stateDir, LogFileName), LogFilePath())
}

func TestResolve(t *testing.T) {
	game := t.TempDir()
	p, err := New(game)
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"relative", "config/modpick/rules.json", filepath.Join(game, "config", "modpick", "rules.json")},
		{"absolute", "/etc/rules.json", "/etc/rules.json"},
		{"unclean_absolute", "/etc/../etc/rules.json", "/etc/rules.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Resolve(tt.in))
		})
	}
}
