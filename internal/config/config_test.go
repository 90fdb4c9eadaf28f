package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 2, cfg.IndentOr(-1))
	assert.Equal(t, "auto", cfg.Output.Color)
	assert.True(t, cfg.LiteralBlocks())
	assert.Equal(t, "14", cfg.List.KeyColor)
	assert.Equal(t, 0, cfg.ListLimit())
}

func TestLoadMergesUserFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "output:\n  format: yaml\n  indent: 0\nlist:\n  limit: 5\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, 0, cfg.IndentOr(2), "an explicit zero overrides the default")
	assert.Equal(t, "auto", cfg.Output.Color, "unset fields keep defaults")
	assert.Equal(t, 5, cfg.ListLimit())
}

func TestLoadEmptyPathGivesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	def, err := Default()
	require.NoError(t, err)
	assert.Equal(t, def, cfg)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := writeConfig(t, t.TempDir(), "output: [not, a, mapping]\n")
	_, err = Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	neg := -1
	big := 99
	tests := []struct {
		name  string
		edit  func(*Config)
		field string
	}{
		{"format", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"indent negative", func(c *Config) { c.Output.Indent = &neg }, "output.indent"},
		{"indent too big", func(c *Config) { c.Output.Indent = &big }, "output.indent"},
		{"color mode", func(c *Config) { c.Output.Color = "sometimes" }, "output.color"},
		{"key color", func(c *Config) { c.List.KeyColor = "purple" }, "list.key_color"},
		{"value color", func(c *Config) { c.List.ValueColor = "256" }, "list.value_color"},
		{"limit", func(c *Config) { c.List.Limit = &neg }, "list.limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Default()
			require.NoError(t, err)
			tt.edit(&cfg)
			err = cfg.Validate()
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	cfg, err := Default()
	require.NoError(t, err)
	cfg.List.KeyColor = "#ff8800"
	assert.NoError(t, cfg.Validate())
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "/explicit.yaml", ResolvePath("/explicit.yaml"))

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	assert.Equal(t, "", ResolvePath(""), "no file means no path")

	path := writeConfig(t, filepath.Join(xdg, AppDirName), "output:\n  format: raw\n")
	assert.Equal(t, path, ResolvePath(""))
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	out, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, out, "format: json")
	assert.Contains(t, out, "key_color: \"14\"")
}

func TestDefaultYAMLIsACopy(t *testing.T) {
	a := DefaultYAML()
	a[0] = 'X'
	assert.NotEqual(t, byte('X'), DefaultYAML()[0])
}
