package pointer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Format expands a printf-style pointer template. It fails when the number of
// verbs does not match the number of arguments or when fmt reports a bad verb,
// so a broken template never silently becomes a pointer. Argument text that
// happens to contain "%!" is kept as is.
func Format(format string, args ...any) (string, error) {
	segs, ok := splitTemplate(format)
	if !ok {
		return formatIndexed(format, args)
	}
	want := 0
	for _, s := range segs {
		want += s.args
	}
	if want != len(args) {
		return "", failure(format, fmt.Sprintf("template wants %d arguments, got %d", want, len(args)), nil)
	}

	var b strings.Builder
	next := 0
	for _, s := range segs {
		if s.args == 0 {
			b.WriteString(s.text)
			continue
		}
		used := args[next : next+s.args]
		next += s.args
		piece := fmt.Sprintf(s.text, used...)
		if s.bad(piece, used[len(used)-1]) {
			return "", failure(format, "malformed template: "+piece, nil)
		}
		b.WriteString(piece)
	}
	return b.String(), nil
}

// segment is either literal text (args == 0, %% already folded) or a single
// verb with the number of arguments it consumes.
type segment struct {
	text  string
	verb  rune
	stars bool
	args  int
}

// bad reports whether fmt rendered piece as an error marker rather than as
// the value. The value's own text is checked so an argument that merely
// looks like a marker is not mistaken for one.
func (s segment) bad(piece string, value any) bool {
	if s.stars && (strings.HasPrefix(piece, "%!(BADWIDTH)") || strings.HasPrefix(piece, "%!(BADPREC)")) {
		return true
	}
	marker := "%!" + string(s.verb) + "("
	return strings.HasPrefix(piece, marker) && !strings.HasPrefix(fmt.Sprint(value), marker)
}

// splitTemplate cuts format into literal and verb segments. It gives up
// (ok false) on explicit argument indexes, where verbs and arguments do not
// pair up in order, and on a trailing bare %.
func splitTemplate(format string) ([]segment, bool) {
	var (
		segs []segment
		lit  strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{text: lit.String()})
			lit.Reset()
		}
	}
	for i := 0; i < len(format); {
		c := format[i]
		if c != '%' {
			lit.WriteByte(c)
			i++
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			lit.WriteByte('%')
			i += 2
			continue
		}
		start := i
		i++
		s := segment{args: 1}
		for i < len(format) && strings.IndexByte("+-# 0", format[i]) >= 0 {
			i++
		}
		for i < len(format) && (isDigit(format[i]) || format[i] == '*' || format[i] == '.') {
			if format[i] == '*' {
				s.args++
				s.stars = true
			}
			i++
		}
		if i < len(format) && format[i] == '[' {
			return nil, false
		}
		if i >= len(format) {
			return nil, false
		}
		r, size := utf8.DecodeRuneInString(format[i:])
		i += size
		s.verb = r
		s.text = format[start:i]
		flush()
		segs = append(segs, s)
	}
	flush()
	return segs, true
}

// formatIndexed handles the templates splitTemplate gives up on. fmt error
// markers are counted against the ones the template and arguments carry on
// their own.
func formatIndexed(format string, args []any) (string, error) {
	out := fmt.Sprintf(format, args...)
	allowed := strings.Count(format, "%%!")
	for _, a := range args {
		allowed += strings.Count(fmt.Sprint(a), "%!")
	}
	if strings.Count(out, "%!") > allowed {
		return "", failure(format, "malformed template: "+out, nil)
	}
	return out, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
