package cmd

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jptr/pkg/pointer"
)

func TestSetCommandPrintsDocument(t *testing.T) {
	const doc = `{"foo":["bar","baz"],"n":1}`
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"replace member", []string{"set", "/n", "2"}, `{"foo":["bar","baz"],"n":2}`},
		{"add member", []string{"set", "/new", `{"x":true}`}, `{"foo":["bar","baz"],"n":1,"new":{"x":true}}`},
		{"append marker", []string{"set", "/foo/-", `"qux"`}, `{"foo":["bar","baz","qux"],"n":1}`},
		{"append at length", []string{"set", "/foo/2", "null"}, `{"foo":["bar","baz",null],"n":1}`},
		{"replace element", []string{"set", "/foo/0", "bare word"}, `{"foo":["bare word","baz"],"n":1}`},
		{"force string", []string{"set", "/n", "42", "--string"}, `{"foo":["bar","baz"],"n":"42"}`},
		{"replace root", []string{"set", "", "[1]"}, `[1]`},
		{"template", []string{"set", "/foo/%d", "0", "-a", "1"}, `{"foo":["bar",0],"n":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, "doc.json", doc)
			args := append(tt.args, path, "--indent", "0")
			out, err := runCLI(t, nil, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, doc, string(data), "file untouched without --write")
		})
	}
}

func TestSetFailures(t *testing.T) {
	const doc = `{"foo":["bar","baz"],"n":1}`
	tests := []struct {
		name string
		args []string
	}{
		{"past length", []string{"set", "/foo/3", "1"}},
		{"missing parent", []string{"set", "/missing/child", "1"}},
		{"scalar parent", []string{"set", "/n/child", "1"}},
		{"leading zero", []string{"set", "/foo/01", "1"}},
		{"malformed", []string{"set", "foo", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, "doc.json", doc)
			args := append(tt.args, path, "-w")
			_, err := runCLI(t, nil, args...)
			require.ErrorIs(t, err, pointer.ErrResolve)
			assert.Equal(t, ExitFailure, ExitCode(err))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, doc, string(data))
		})
	}
}

func TestSetWriteKeepsFormat(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		input string
		args  []string
		want  string
	}{
		{
			name:  "json",
			file:  "doc.json",
			input: `{"b":1,"a":2}`,
			args:  []string{"set", "/a", "3"},
			want:  "{\n  \"b\": 1,\n  \"a\": 3\n}\n",
		},
		{
			name:  "yaml keeps order",
			file:  "doc.yaml",
			input: "zeta: 1\nalpha:\n  - x\n",
			args:  []string{"set", "/alpha/-", "w"},
			want:  "zeta: 1\nalpha:\n  - x\n  - w\n",
		},
		{
			name:  "yaml stream keeps every document",
			file:  "doc.yaml",
			input: "a: 1\n---\nb: 2\n",
			args:  []string{"set", "/0/a", "5"},
			want:  "a: 5\n---\nb: 2\n",
		},
		{
			name:  "yaml stream detected by content",
			file:  "stream.txt",
			input: "---\nname: web\n---\nname: db\n",
			args:  []string{"set", "/1/name", "cache"},
			want:  "name: web\n---\nname: cache\n",
		},
		{
			name:  "toml",
			file:  "doc.toml",
			input: "title = \"old\"\n",
			args:  []string{"set", "/title", "new"},
			want:  "title = 'new'\n",
		},
		{
			name:  "ndjson",
			file:  "doc.ndjson",
			input: "{\"id\":1}\n{\"id\":2}\n",
			args:  []string{"set", "/1/id", "5"},
			want:  "{\"id\":1}\n{\"id\":5}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, tt.file, tt.input)
			args := append(tt.args, path, "--write")
			out, err := runCLI(t, nil, args...)
			require.NoError(t, err)
			assert.Empty(t, out)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestSetWriteNeedsFile(t *testing.T) {
	stdin := `{"a":1}`
	_, err := runCLI(t, &stdin, "set", "/a", "2", "-", "-w")
	require.Error(t, err)
	assert.Equal(t, ExitUsage, ExitCode(err))
}

func TestSetFromStdin(t *testing.T) {
	stdin := `{"a":1}`
	out, err := runCLI(t, &stdin, "set", "/b", "true", "--indent", "0")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":true}`+"\n", out)
}
