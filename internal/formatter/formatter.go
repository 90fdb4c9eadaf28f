package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/jptr/pkg/tree"
)

// Output formats understood by Format.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputTOML = "toml"
	OutputRaw  = "raw"
)

// Options selects and tunes an output format.
type Options struct {
	Format              string
	Indent              int
	LiteralBlockStrings bool
}

var (
	defaultKeyColor   = lipgloss.Color("14")
	defaultValueColor = lipgloss.Color("248")

	keyStyle   lipgloss.Style
	valueStyle lipgloss.Style
)

// ListColors controls the colors used by RenderList. Nil fields fall back to
// the defaults (ANSI 256 codes).
type ListColors struct {
	KeyColor   color.Color
	ValueColor color.Color
}

// SetListTheme overrides the list styles.
func SetListTheme(lc ListColors) {
	kc := lc.KeyColor
	vc := lc.ValueColor
	if kc == nil {
		kc = defaultKeyColor
	}
	if vc == nil {
		vc = defaultValueColor
	}
	keyStyle = lipgloss.NewStyle().Foreground(kc)
	valueStyle = lipgloss.NewStyle().Foreground(vc)
}

//nolint:gochecknoinits // initialize default list theme for package consumers
func init() {
	SetListTheme(ListColors{})
}

// Format renders n in the format named by opts.Format.
func Format(n *tree.Node, opts Options) (string, error) {
	switch strings.ToLower(opts.Format) {
	case "", OutputJSON:
		return FormatJSON(n, opts.Indent)
	case OutputYAML:
		return FormatYAML(n, YAMLFormatOptions{Indent: opts.Indent, LiteralBlockStrings: opts.LiteralBlockStrings})
	case OutputTOML:
		return FormatTOML(n)
	case OutputRaw:
		return FormatRaw(n), nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected json, yaml, toml or raw)", opts.Format)
	}
}

// FormatJSON renders n as JSON with members in document order. indent <= 0
// gives compact output. The result ends with a newline.
func FormatJSON(n *tree.Node, indent int) (string, error) {
	raw, err := n.MarshalJSON()
	if err != nil {
		return "", err
	}
	if indent <= 0 {
		return string(raw) + "\n", nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", strings.Repeat(" ", indent)); err != nil {
		return "", err
	}
	buf.WriteByte('\n')
	return buf.String(), nil
}

// FormatRaw prints strings without quotes and everything else as compact
// JSON, one value per call, newline terminated.
func FormatRaw(n *tree.Node) string {
	if n.Kind() == tree.String {
		return n.Text() + "\n"
	}
	return n.String() + "\n"
}

// Stringify returns a single-line rendering of n: strings as-is with line
// breaks escaped, everything else as compact JSON.
func Stringify(n *tree.Node) string {
	if n == nil {
		return ""
	}
	if n.Kind() == tree.String {
		return escapeScalarString(n.Text())
	}
	return n.String()
}

// escapeScalarString flattens line breaks so list rows stay single-line.
func escapeScalarString(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.ReplaceAll(s, "\n", "\\n")
}

// truncate shortens s to maxLen display cells, ending with an ellipsis when
// there is room for one.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 || lipgloss.Width(s) <= maxLen {
		return s
	}
	target := maxLen
	suffix := ""
	if maxLen >= 3 {
		target = maxLen - 3
		suffix = "..."
	}
	var b strings.Builder
	width := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if width+rw > target {
			break
		}
		b.WriteRune(r)
		width += rw
	}
	return b.String() + suffix
}

// TerminalWidth returns the width of the terminal on stdout, or 0 when stdout
// is not a terminal.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 0
	}
	return width
}
