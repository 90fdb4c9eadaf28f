package pointer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "root", input: "", want: nil},
		{name: "empty key", input: "/", want: []string{""}},
		{name: "simple", input: "/foo/0", want: []string{"foo", "0"}},
		{name: "trailing slash", input: "/foo/", want: []string{"foo", ""}},
		{name: "escaped slash", input: "/a~1b", want: []string{"a/b"}},
		{name: "escaped tilde", input: "/m~0n", want: []string{"m~n"}},
		{name: "escape order", input: "/~01", want: []string{"~1"}},
		{name: "no leading slash", input: "foo", wantErr: true},
		{name: "bad escape", input: "/a~2", wantErr: true},
		{name: "dangling tilde", input: "/a~", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrResolve)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.True(t, p.IsRoot())
				assert.Empty(t, p.Tokens())
				return
			}
			assert.Equal(t, tt.want, p.Tokens())
			assert.Equal(t, tt.input, p.String(), "re-encoding gives back the input")
		})
	}
}

func TestEscapeUnescape(t *testing.T) {
	assert.Equal(t, "a~1b~0c", Escape("a/b~c"))
	got, err := Unescape("a~1b~0c")
	require.NoError(t, err)
	assert.Equal(t, "a/b~c", got)

	_, err = Unescape("~x")
	require.Error(t, err)
}

func TestPointerAlgebra(t *testing.T) {
	p := New("a", "b/c")
	assert.Equal(t, "/a/b~1c", p.String())
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, "b/c", p.Last())
	assert.Equal(t, "/a", p.Parent().String())
	assert.True(t, p.Parent().Parent().IsRoot())
	assert.True(t, Pointer{}.Parent().IsRoot())
	assert.Equal(t, "", Pointer{}.Last())

	child := p.Parent().Append("x")
	grand := child.AppendIndex(3)
	assert.Equal(t, "/a/x/3", grand.String())
	assert.Equal(t, "/a/b~1c", p.String(), "appending to a parent does not disturb the original")

	toks := p.Tokens()
	toks[0] = "mutated"
	assert.Equal(t, "a", p.Tokens()[0])
}

func TestMustParsePanics(t *testing.T) {
	require.NotPanics(t, func() { MustParse("/ok") })
	require.Panics(t, func() { MustParse("bad") })
}

func TestPointerTextMarshaling(t *testing.T) {
	var holder struct {
		At Pointer `json:"at"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"at":"/x/~1y"}`), &holder))
	assert.Equal(t, []string{"x", "/y"}, holder.At.Tokens())

	out, err := json.Marshal(holder)
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"/x/~1y"}`, string(out))

	require.Error(t, json.Unmarshal([]byte(`{"at":"x"}`), &holder))
}

func TestArrayIndex(t *testing.T) {
	tests := []struct {
		tok  string
		want int
		ok   bool
	}{
		{"0", 0, true},
		{"7", 7, true},
		{"10", 10, true},
		{"01", 0, false},
		{"-1", 0, false},
		{"+1", 0, false},
		{"1a", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{"99999999999999999999999", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			got, ok := arrayIndex(tt.tok)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		args    []any
		want    string
		wantErr bool
	}{
		{name: "plain", format: "/a/b", want: "/a/b"},
		{name: "verbs", format: "/foo/%d/%s", args: []any{0, "bar"}, want: "/foo/0/bar"},
		{name: "percent escape", format: "/100%%/%d", args: []any{1}, want: "/100%/1"},
		{name: "width star", format: "/%*d", args: []any{3, 7}, want: "/  7"},
		{name: "too few args", format: "/%d/%s", args: []any{1}, wantErr: true},
		{name: "too many args", format: "/%d", args: []any{1, 2}, wantErr: true},
		{name: "wrong verb type", format: "/%d", args: []any{"x"}, wantErr: true},
		{name: "dangling percent", format: "/a%", wantErr: true},
		{name: "explicit index", format: "/%[1]s/%[1]s", args: []any{"k"}, want: "/k/k"},
		{name: "explicit index wrong type", format: "/%[1]d", args: []any{"k"}, wantErr: true},
		{name: "argument with bang marker", format: "/%s", args: []any{"100%!"}, want: "/100%!"},
		{name: "escaped bang marker", format: "/a%%!/%d", args: []any{1}, want: "/a%!/1"},
		{name: "escaped bang marker and wrong verb type", format: "/a%%!/%d", args: []any{"x"}, wantErr: true},
		{name: "nil argument", format: "/%d", args: []any{nil}, wantErr: true},
		{name: "bad star width", format: "/%*d", args: []any{"w", 7}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.format, tt.args...)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrResolve)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
