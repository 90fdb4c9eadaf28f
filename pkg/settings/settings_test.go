package settings

import (
	"testing"
)

func TestNewCliParams(t *testing.T) {
	want := Run{
		MinLogLevel:  0,
		OutputFormat: "json",
		Indent:       2,
		ExitOnError:  true,
	}
	if got := NewCliParams(); *got != want {
		t.Errorf("NewCliParams() = %+v, want %+v", got, want)
	}
}

func TestInputLabel(t *testing.T) {
	tests := []struct {
		name  string
		input Input
		want  string
	}{
		{"file", Input{Path: "data.json"}, "data.json"},
		{"dash", Input{Path: StdinPath}, "stdin"},
		{"empty", Input{}, "stdin"},
		{"flagged stdin", Input{Path: "x", FromStdin: true}, "stdin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.input.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}
