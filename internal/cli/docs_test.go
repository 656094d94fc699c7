package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLintMermaidMissingContentDir(t *testing.T) {
	t.Parallel()

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"lint-mermaid", "--content-dir", filepath.Join(t.TempDir(), "missing")})

	err := root.Execute()
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestLintMermaidNoDiagrams(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "page.md"), []byte("# Nothing here\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"lint-mermaid", "--content-dir", dir})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "Found 0 mermaid diagram(s)") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestCheckFreshnessMissingContentDir(t *testing.T) {
	t.Parallel()

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"check-freshness", "--content-dir", filepath.Join(t.TempDir(), "missing")})

	err := root.Execute()
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestCheckFreshnessNoCheckablePages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "page.md"), []byte("# No frontmatter\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"check-freshness", "--content-dir", dir})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(errOut.String(), "Found 0 page(s)") {
		t.Fatalf("unexpected progress output: %q", errOut.String())
	}
	if !strings.Contains(out.String(), "# Documentation Freshness Report") {
		t.Fatalf("expected report on stdout: %q", out.String())
	}
}
