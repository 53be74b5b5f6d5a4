package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_dateparse/lexicon"
)

func validTestConfig() *Config {
	return &Config{
		Language: "en-us",
		Logging:  LoggingConfig{Level: "info", Format: "json"},
		Watch:    WatchConfig{Extensions: []string{".md"}, Marker: "remind_me"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "en-us", cfg.Language)
	assert.Equal(t, "", cfg.Timezone)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "remind_me", cfg.Watch.Marker)
	assert.Equal(t, []string{".md", ".markdown", ".txt"}, cfg.Watch.Extensions)
}

func TestLoad_FromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
language: de-DE
timezone: Europe/Berlin
default_time: "09:30"
logging:
  level: debug
  format: json
watch:
  marker: todo
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "de-DE", cfg.Language)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "todo", cfg.Watch.Marker)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())

	clock, err := cfg.DefaultClock()
	require.NoError(t, err)
	assert.Equal(t, &lexicon.Clock{Hour: 9, Minute: 30}, clock)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("language: fr\nlogging:\n  level: info\n"), 0o644))

	t.Setenv("DATEPARSE_LANGUAGE", "es")
	t.Setenv("DATEPARSE_LOGGING_LEVEL", "error")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "es", cfg.Language)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoad_BrokenFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("language: [unclosed"), 0o644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"bad language", func(c *Config) { c.Language = "not a tag!" }, true},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, true},
		{"bad default time", func(c *Config) { c.DefaultTime = "9am" }, true},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"empty marker", func(c *Config) { c.Watch.Marker = " " }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("")
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = ParseClock("18:45")
	require.NoError(t, err)
	assert.Equal(t, &lexicon.Clock{Hour: 18, Minute: 45}, c)
}

func TestDump(t *testing.T) {
	out, err := validTestConfig().Dump()
	require.NoError(t, err)
	assert.Contains(t, string(out), "language: en-us")
	assert.Contains(t, string(out), "marker: remind_me")
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (stand-in for testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
