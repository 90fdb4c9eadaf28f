package formatter

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/jptr/pkg/tree"
)

// Entry is one row of a pointer listing.
type Entry struct {
	Pointer string
	Value   *tree.Node
}

// ListOptions controls list output formatting.
type ListOptions struct {
	NoColor  bool
	MaxWidth int // total row width; 0 disables truncation
}

// RenderList prints one "pointer  value" row per entry with the pointer
// column padded to the widest pointer. Values are rendered by Stringify.
func RenderList(entries []Entry, opts ListOptions) string {
	const sep = "  "
	keyWidth := 0
	for _, e := range entries {
		keyWidth = max(keyWidth, lipgloss.Width(displayPointer(e.Pointer)))
	}
	valueWidth := 0
	if opts.MaxWidth > 0 {
		valueWidth = max(opts.MaxWidth-keyWidth-len(sep), 10)
	}

	var b strings.Builder
	for _, e := range entries {
		key := displayPointer(e.Pointer)
		key += strings.Repeat(" ", keyWidth-lipgloss.Width(key))
		val := truncate(Stringify(e.Value), valueWidth)
		if !opts.NoColor {
			key = keyStyle.Render(key)
			val = valueStyle.Render(val)
		}
		b.WriteString(key)
		b.WriteString(sep)
		b.WriteString(val)
		b.WriteString("\n")
	}
	return b.String()
}

// displayPointer labels the root pointer, which is the empty string.
func displayPointer(p string) string {
	if p == "" {
		return "(root)"
	}
	return p
}
