// Package pointer implements JSON Pointer (RFC 6901) lookups and writes over
// a tree.Node value tree.
//
// A pointer is a sequence of reference tokens written as "/a/b/0". The empty
// string addresses the whole value. Inside a token "~1" stands for "/" and
// "~0" for "~".
//
// Get and Set have printf-style twins, Getf and Setf, which format the path
// first and then resolve it the same way. A literal percent sign in such a
// template is written "%%".
package pointer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// AppendToken is the array token that addresses the slot past the last
// element. It is only meaningful for Set.
const AppendToken = "-"

var (
	// ErrResolve is matched by every error this package returns.
	ErrResolve = errors.New("json pointer resolution failed")

	// SkipChildren may be returned from a WalkFunc to skip the node's children.
	SkipChildren = errors.New("skip children") //nolint:revive,staticcheck // mirrors filepath.SkipDir

	escaper   = strings.NewReplacer("~", "~0", "/", "~1")
	unescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// Error describes a failed parse, lookup or write. It matches ErrResolve with
// errors.Is and unwraps to the underlying tree error when there is one.
type Error struct {
	Path   string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("json pointer %q: %s", e.Path, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Is(target error) bool {
	return target == ErrResolve
}

func (e *Error) Unwrap() error {
	return e.Err
}

func failure(path, reason string, cause error) error {
	return &Error{Path: path, Reason: reason, Err: cause}
}

// Pointer is a parsed JSON Pointer. The zero value addresses the root.
type Pointer struct {
	tokens []string
}

// New builds a pointer from unescaped tokens.
func New(tokens ...string) Pointer {
	if len(tokens) == 0 {
		return Pointer{}
	}
	return Pointer{tokens: append([]string(nil), tokens...)}
}

// Parse decodes a pointer string.
func Parse(s string) (Pointer, error) {
	if s == "" {
		return Pointer{}, nil
	}
	if s[0] != '/' {
		return Pointer{}, failure(s, "must be empty or start with '/'", nil)
	}
	raw := strings.Split(s[1:], "/")
	tokens := make([]string, len(raw))
	for i, r := range raw {
		tok, err := Unescape(r)
		if err != nil {
			return Pointer{}, failure(s, fmt.Sprintf("token %d", i), err)
		}
		tokens[i] = tok
	}
	return Pointer{tokens: tokens}, nil
}

// MustParse is like Parse but panics on a malformed pointer.
func MustParse(s string) Pointer {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Escape encodes a single reference token.
func Escape(token string) string {
	return escaper.Replace(token)
}

// Unescape decodes a single reference token. A '~' not followed by '0' or
// '1' is an error.
func Unescape(token string) (string, error) {
	if !strings.Contains(token, "~") {
		return token, nil
	}
	for i := 0; i < len(token); i++ {
		if token[i] != '~' {
			continue
		}
		if i+1 >= len(token) || (token[i+1] != '0' && token[i+1] != '1') {
			return "", fmt.Errorf("invalid escape at offset %d in %q", i, token)
		}
		i++
	}
	return unescaper.Replace(token), nil
}

// String encodes the pointer.
func (p Pointer) String() string {
	if len(p.tokens) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range p.tokens {
		b.WriteByte('/')
		b.WriteString(escaper.Replace(t))
	}
	return b.String()
}

// Tokens returns a copy of the decoded tokens.
func (p Pointer) Tokens() []string {
	return append([]string(nil), p.tokens...)
}

// Len returns the number of tokens.
func (p Pointer) Len() int {
	return len(p.tokens)
}

// IsRoot reports whether p addresses the whole value.
func (p Pointer) IsRoot() bool {
	return len(p.tokens) == 0
}

// Parent returns p without its last token. The root is its own parent.
func (p Pointer) Parent() Pointer {
	if len(p.tokens) <= 1 {
		return Pointer{}
	}
	return Pointer{tokens: p.tokens[:len(p.tokens)-1:len(p.tokens)-1]}
}

// Last returns the final token, or "" for the root.
func (p Pointer) Last() string {
	if len(p.tokens) == 0 {
		return ""
	}
	return p.tokens[len(p.tokens)-1]
}

// Append returns a new pointer with tokens added below p.
func (p Pointer) Append(tokens ...string) Pointer {
	out := make([]string, 0, len(p.tokens)+len(tokens))
	out = append(out, p.tokens...)
	out = append(out, tokens...)
	return Pointer{tokens: out}
}

// AppendIndex returns a new pointer with an array index added below p.
func (p Pointer) AppendIndex(i int) Pointer {
	return p.Append(strconv.Itoa(i))
}

// MarshalText implements encoding.TextMarshaler.
func (p Pointer) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pointer) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// arrayIndex parses a token as an array index. RFC 6901 only admits "0" or a
// digit string without a leading zero.
func arrayIndex(tok string) (int, bool) {
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return n, true
}
