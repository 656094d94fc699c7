package mermaid

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// blockPattern matches fenced mermaid code blocks in markdown.
var blockPattern = regexp.MustCompile("(?s)```mermaid\\s*\\n(.*?)\\n```")

// ErrRendererMissing reports that the mermaid-cli binary could not be run.
var ErrRendererMissing = errors.New("mermaid: renderer not found")

// Diagram is one fenced mermaid block found in a markdown file.
type Diagram struct {
	Path   string
	Line   int // 1-based line number of the first diagram line
	Source string
}

// LintError describes one diagram the renderer rejected.
type LintError struct {
	Path    string
	Line    int
	Message string
}

// FindDiagrams walks root for .md files and extracts every mermaid block.
func FindDiagrams(root string) ([]Diagram, error) {
	var diagrams []Diagram
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		text := string(data)
		for _, m := range blockPattern.FindAllStringSubmatchIndex(text, -1) {
			diagrams = append(diagrams, Diagram{
				Path:   path,
				Line:   strings.Count(text[:m[0]], "\n") + 2,
				Source: strings.TrimSpace(text[m[2]:m[3]]),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return diagrams, nil
}

// ResolveCommand locates the mermaid-cli binary, preferring a repo-local
// node_modules install over PATH to avoid npx overhead.
func ResolveCommand(repoRoot string) string {
	local := filepath.Join(repoRoot, "node_modules", ".bin", "mmdc")
	if st, err := os.Stat(local); err == nil && st.Mode().IsRegular() {
		return local
	}
	if p, err := exec.LookPath("mmdc"); err == nil {
		return p
	}
	return "mmdc"
}

// Linter validates diagrams by rendering each through the mermaid-cli
// renderer as a black box.
type Linter struct {
	Command string        // renderer binary; resolved via ResolveCommand when empty
	Workers int           // parallel renderer invocations; default 4
	Timeout time.Duration // per-diagram bound; default 60s
}

// Run validates all diagrams with a bounded worker pool. Returned failures
// are sorted by (path, line); an empty slice means every diagram parsed.
// A missing renderer binary aborts the run with ErrRendererMissing.
func (l Linter) Run(ctx context.Context, diagrams []Diagram) ([]LintError, error) {
	command := l.Command
	if command == "" {
		command = ResolveCommand(".")
	}
	workers := l.Workers
	if workers <= 0 {
		workers = 4
	}
	timeout := l.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	tmpDir, err := os.MkdirTemp("", "mermaid-lint-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	messages := make([]string, len(diagrams))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, d := range diagrams {
		i, d := i, d
		g.Go(func() error {
			msg, err := validateOne(ctx, command, tmpDir, i, d.Source, timeout)
			if err != nil {
				return err
			}
			messages[i] = msg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var failures []LintError
	for i, msg := range messages {
		if msg != "" {
			failures = append(failures, LintError{Path: diagrams[i].Path, Line: diagrams[i].Line, Message: msg})
		}
	}
	sort.Slice(failures, func(i, j int) bool {
		if failures[i].Path == failures[j].Path {
			return failures[i].Line < failures[j].Line
		}
		return failures[i].Path < failures[j].Path
	})
	return failures, nil
}

// validateOne renders a single diagram. It returns a non-empty message when
// the diagram is invalid, and a non-nil error only for environment problems
// that should abort the whole run.
func validateOne(ctx context.Context, command, tmpDir string, idx int, source string, timeout time.Duration) (string, error) {
	inFile := filepath.Join(tmpDir, fmt.Sprintf("%d.mmd", idx))
	outFile := filepath.Join(tmpDir, fmt.Sprintf("%d.svg", idx))
	if err := os.WriteFile(inFile, []byte(source), 0o644); err != nil {
		return "", err
	}
	defer os.Remove(inFile)
	defer os.Remove(outFile)

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, command, "-i", inFile, "-o", outFile)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return "", nil
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrRendererMissing, command)
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return fmt.Sprintf("timed out after %s", timeout), nil
	}
	return summarizeStderr(stderr.String()), nil
}

// summarizeStderr keeps the renderer output lines that look like parser
// diagnostics, capped at five; when nothing matches it falls back to the
// first 300 bytes of raw output.
func summarizeStderr(output string) string {
	keywords := []string{"error", "parse", "expect", "syntax", "token"}
	var kept []string
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		lower := strings.ToLower(line)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				kept = append(kept, line)
				break
			}
		}
		if len(kept) == 5 {
			break
		}
	}
	if len(kept) > 0 {
		return strings.Join(kept, "\n")
	}
	trimmed := strings.TrimSpace(output)
	if len(trimmed) > 300 {
		trimmed = trimmed[:300]
	}
	if trimmed == "" {
		trimmed = "renderer exited with an error"
	}
	return trimmed
}
