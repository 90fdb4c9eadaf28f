package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jptr/pkg/pointer"
	"github.com/oakwood-commons/jptr/pkg/tree"
)

func TestTryDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
		want  string
	}{
		{name: "JSON object", input: `{"name":"alice","age":30}`, ok: true, want: `{"name":"alice","age":30}`},
		{name: "JSON array", input: `[1,2,3]`, ok: true, want: `[1,2,3]`},
		{name: "YAML", input: "name: bob\nage: 25\n", ok: true, want: `{"name":"bob","age":25}`},
		{name: "plain string", input: "hello world"},
		{name: "number", input: "42"},
		{name: "boolean", input: "true"},
		{name: "empty", input: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TryDecode(tt.input)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.want, got.String())
		})
	}

	t.Run("JWT", func(t *testing.T) {
		got, ok := TryDecode(validJWT)
		require.True(t, ok)
		assert.True(t, got.Has("payload"))
	})
}

func TestRecursiveDecode(t *testing.T) {
	src, err := tree.FromGo(map[string]any{
		"name":    "alice",
		"payload": `{"inner":"{\"deep\":[1,2]}"}`,
		"list":    []any{"plain", `[true]`},
	})
	require.NoError(t, err)
	before := src.Clone()

	got := RecursiveDecode(src)

	deep, err := pointer.Get(got, "/payload/inner/deep/1")
	require.NoError(t, err)
	assert.Equal(t, "2", deep.Number())

	flag, err := pointer.Get(got, "/list/1/0")
	require.NoError(t, err)
	assert.True(t, flag.Bool())

	name, err := pointer.Get(got, "/name")
	require.NoError(t, err)
	assert.Equal(t, "alice", name.Text())

	assert.True(t, tree.Equal(before, src), "input is not modified")
	assert.Equal(t, 1, got.Refs())
}

func TestRecursiveDecodeScalarRoot(t *testing.T) {
	got := RecursiveDecode(tree.NewString(`{"a":1}`))
	assert.Equal(t, `{"a":1}`, got.String())

	got = RecursiveDecode(tree.NewInt(3))
	assert.Equal(t, "3", got.String())
}
