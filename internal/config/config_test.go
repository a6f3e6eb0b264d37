package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/require"
)

func TestSocketPathFromEnvironment(t *testing.T) {
	t.Setenv(SocketEnv, " /run/user/1000/niri.wayland-1.sock ")
	path, err := SocketPath()
	require.NoError(t, err)
	require.Equal(t, "/run/user/1000/niri.wayland-1.sock", path)

	t.Setenv(SocketEnv, "")
	_, err = SocketPath()
	require.ErrorIs(t, err, ErrSocketUnset)
}

func TestResolvePathPrecedence(t *testing.T) {
	explicit := "/tmp/custom.toml"
	resolved, err := ResolvePath(explicit)
	require.NoError(t, err)
	require.Equal(t, explicit, resolved)

	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	resolved, err = ResolvePath("")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(configHome, "niri-output-toggle", "config.toml"), resolved)
}

func TestLoadMissingConfigUsesDefaultsWithWarning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, path, loaded.Path)
	require.False(t, loaded.Exists)
	require.Equal(t, Default(), loaded.Config)
	require.Len(t, loaded.Warnings, 1)
	require.Contains(t, loaded.Warnings[0].Message, "not found")
	require.Contains(t, loaded.Warnings[0].Message, "HDMI-A-1")
	require.Empty(t, loaded.Warnings[0].Key)
}

func TestLoadExistingTOMLOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := `
output = " DP-1 "

[notify]
urgency = "Critical"
timeout_ms = 5000

[sound]
enable = true
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.True(t, loaded.Exists)
	require.Empty(t, loaded.Warnings)
	require.Equal(t, "DP-1", loaded.Config.Output)
	require.Equal(t, "critical", loaded.Config.Notify.Urgency)
	require.Equal(t, 5000, loaded.Config.Notify.TimeoutMS)
	require.True(t, loaded.Config.Notify.Enable)
	require.Equal(t, "niri-output-toggle", loaded.Config.Notify.AppName)
	require.True(t, loaded.Config.Sound.Enable)
	require.Equal(t, "info", loaded.Config.Log.Level)
}

func TestParseUnknownKeysAreWarnings(t *testing.T) {
	cfg, warnings, err := Parse("output = \"HDMI-A-2\"\ncolour = \"red\"\n", Default())
	require.NoError(t, err)
	require.Equal(t, "HDMI-A-2", cfg.Output)
	require.Equal(t, []Warning{{Key: "colour", Message: "unknown key ignored"}}, warnings)
}

func TestParseNestedUnknownKeyCarriesDottedKey(t *testing.T) {
	_, warnings, err := Parse("[notify]\nenable = true\nsticky = true\n", Default())
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Equal(t, "notify.sticky", warnings[0].Key)
	require.Equal(t, "notify.sticky: unknown key ignored", warnings[0].String())
}

func TestWarningStringWithoutKey(t *testing.T) {
	require.Equal(t, "plain", Warning{Message: "plain"}.String())
}

func TestParseSyntaxErrorReportsLine(t *testing.T) {
	_, _, err := Parse("output = \"HDMI-A-1\"\n[notify\n", Default())
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 2")
}

func TestLoadInvalidConfigWrapsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`output = ""`), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), path)
	require.Contains(t, err.Error(), "output must not be empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
		warns   int
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty output", mutate: func(c *Config) { c.Output = " " }, wantErr: "output must not be empty"},
		{name: "bad urgency", mutate: func(c *Config) { c.Notify.Urgency = "loud" }, wantErr: "notify.urgency"},
		{name: "negative timeout", mutate: func(c *Config) { c.Notify.TimeoutMS = -1 }, wantErr: "notify.timeout_ms"},
		{name: "empty app name", mutate: func(c *Config) { c.Notify.AppName = "" }, wantErr: "notify.app_name"},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "trace" }, wantErr: "log.level"},
		{name: "empty title warns", mutate: func(c *Config) { c.Notify.Title = "" }, warns: 1},
		{name: "all sinks off warns", mutate: func(c *Config) { c.Notify.Enable = false }, warns: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			warnings, err := Validate(cfg)
			if tc.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, warnings, tc.warns)
		})
	}
}
