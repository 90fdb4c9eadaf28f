package settings

import (
	"context"
	"testing"
)

func TestIntoContextFromContextRoundTrip(t *testing.T) {
	s := &Run{NoColor: true, OutputFormat: "yaml"}
	ctx := IntoContext(context.Background(), s)

	got, ok := FromContext(ctx)
	if !ok {
		t.Fatal("FromContext() found no settings")
	}
	if got != s {
		t.Errorf("FromContext() returned a different pointer")
	}
}

func TestFromContextMissing(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Error("FromContext() on an empty context should report false")
	}
	if _, ok := FromContext(IntoContext(context.Background(), nil)); ok {
		t.Error("FromContext() with a nil *Run should report false")
	}
}

func TestFromContextOrDefault(t *testing.T) {
	got := FromContextOrDefault(context.Background())
	if *got != *NewCliParams() {
		t.Errorf("expected defaults, got %+v", got)
	}

	s := &Run{Indent: 4}
	if FromContextOrDefault(IntoContext(context.Background(), s)) != s {
		t.Error("expected the attached settings")
	}
}
