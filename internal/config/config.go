// Package config loads the jptr configuration: embedded defaults merged with
// an optional user file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

// AppDirName is the directory under the user config dir holding config.yaml.
const AppDirName = "jptr"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

var (
	outputFormats = []string{"json", "yaml", "toml", "raw"}
	colorModes    = []string{"auto", "always", "never"}
	hexColor      = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// Config is the merged configuration.
type Config struct {
	Output OutputConfig `yaml:"output"`
	List   ListConfig   `yaml:"list"`
}

// OutputConfig controls how resolved values are printed.
type OutputConfig struct {
	Format              string `yaml:"format,omitempty"`
	Indent              *int   `yaml:"indent,omitempty"`
	Color               string `yaml:"color,omitempty"`
	LiteralBlockStrings *bool  `yaml:"literal_block_strings,omitempty"`
}

// ListConfig controls `jptr list`.
type ListConfig struct {
	KeyColor   string `yaml:"key_color,omitempty"`
	ValueColor string `yaml:"value_color,omitempty"`
	Limit      *int   `yaml:"limit,omitempty"`
}

// DefaultYAML returns a copy of the embedded default config.
func DefaultYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default decodes the embedded defaults.
func Default() (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(embeddedDefaultConfig, &cfg); err != nil {
		return cfg, fmt.Errorf("decode default config: %w", err)
	}
	return cfg, nil
}

// Load returns the defaults merged with the file at path. An empty path
// loads the defaults only. The result is validated.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		var user Config
		if err := yaml.Unmarshal(data, &user); err != nil {
			return cfg, fmt.Errorf("decode %s: %w", path, err)
		}
		cfg = Merge(cfg, user)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Merge overlays the fields set in over onto base.
func Merge(base, over Config) Config {
	out := base
	if over.Output.Format != "" {
		out.Output.Format = over.Output.Format
	}
	if over.Output.Indent != nil {
		out.Output.Indent = over.Output.Indent
	}
	if over.Output.Color != "" {
		out.Output.Color = over.Output.Color
	}
	if over.Output.LiteralBlockStrings != nil {
		out.Output.LiteralBlockStrings = over.Output.LiteralBlockStrings
	}
	if over.List.KeyColor != "" {
		out.List.KeyColor = over.List.KeyColor
	}
	if over.List.ValueColor != "" {
		out.List.ValueColor = over.List.ValueColor
	}
	if over.List.Limit != nil {
		out.List.Limit = over.List.Limit
	}
	return out
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if !slices.Contains(outputFormats, c.Output.Format) {
		return fmt.Errorf("%w: output.format %q (expected one of %v)", ErrInvalid, c.Output.Format, outputFormats)
	}
	if c.Output.Indent != nil && (*c.Output.Indent < 0 || *c.Output.Indent > 16) {
		return fmt.Errorf("%w: output.indent %d (expected 0-16)", ErrInvalid, *c.Output.Indent)
	}
	if !slices.Contains(colorModes, c.Output.Color) {
		return fmt.Errorf("%w: output.color %q (expected one of %v)", ErrInvalid, c.Output.Color, colorModes)
	}
	if !validColor(c.List.KeyColor) {
		return fmt.Errorf("%w: list.key_color %q", ErrInvalid, c.List.KeyColor)
	}
	if !validColor(c.List.ValueColor) {
		return fmt.Errorf("%w: list.value_color %q", ErrInvalid, c.List.ValueColor)
	}
	if c.List.Limit != nil && *c.List.Limit < 0 {
		return fmt.Errorf("%w: list.limit %d must be non-negative", ErrInvalid, *c.List.Limit)
	}
	return nil
}

// IndentOr returns output.indent, or def when unset.
func (c Config) IndentOr(def int) int {
	if c.Output.Indent == nil {
		return def
	}
	return *c.Output.Indent
}

// LiteralBlocks reports output.literal_block_strings, false when unset.
func (c Config) LiteralBlocks() bool {
	return c.Output.LiteralBlockStrings != nil && *c.Output.LiteralBlockStrings
}

// ListLimit returns list.limit, 0 when unset.
func (c Config) ListLimit() int {
	if c.List.Limit == nil {
		return 0
	}
	return *c.List.Limit
}

// Marshal renders the config as YAML.
func (c Config) Marshal() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// validColor accepts an ANSI 256 color code or a hex color. Empty means the
// built-in default.
func validColor(s string) bool {
	if s == "" || hexColor.MatchString(s) {
		return true
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0 && n <= 255
}

// ResolvePath picks the config file to load: explicit when given, otherwise
// $XDG_CONFIG_HOME/jptr/config.yaml or ~/.config/jptr/config.yaml when that
// file exists. It returns "" when there is none.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidate := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, AppDirName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", AppDirName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}
