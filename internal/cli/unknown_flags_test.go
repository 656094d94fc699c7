package cli

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestUnknownFlagIsUsageError(t *testing.T) {
	t.Parallel()

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"generate", "--no-such-flag"})

	err := root.Execute()
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(err.Error(), "no-such-flag") {
		t.Fatalf("expected flag name in message, got: %v", err)
	}
	if !strings.Contains(err.Error(), "Usage:") {
		t.Fatalf("expected usage text in message, got: %v", err)
	}
}

func TestUnknownRootFlagIsUsageError(t *testing.T) {
	t.Parallel()

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--bogus"})

	err := root.Execute()
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}
