package freshness

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/sync/errgroup"
)

// frontmatterPattern matches a TOML frontmatter block at the top of a page.
var frontmatterPattern = regexp.MustCompile(`(?s)^\+\+\+\s*\n(.*?)\n\+\+\+`)

// githubPathPattern matches blob (file) and tree (directory) GitHub URLs.
var githubPathPattern = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+)/(?:blob|tree)/[^/]+/(.+)$`)

// Page is one documentation page carrying codebase provenance frontmatter.
type Page struct {
	Path        string
	Title       string
	Date        time.Time
	CodebaseURL string
	Draft       bool
	Index       bool
}

// Result pairs a page with the newest commit date of its codebase path.
// A page is stale when the codebase changed after the page's date.
type Result struct {
	Page       Page
	LastCommit time.Time
	Stale      bool
	Err        error
}

type frontmatter struct {
	Title    string `toml:"title"`
	Date     any    `toml:"date"`
	Codebase string `toml:"codebase"`
	Draft    bool   `toml:"draft"`
}

// ScanPages walks root for markdown pages whose frontmatter carries both a
// date and a codebase URL. Pages missing either are not checkable and are
// skipped.
func ScanPages(root string) ([]Page, error) {
	var pages []Page
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
		m := frontmatterPattern.FindSubmatch(data)
		if m == nil {
			return nil
		}
		var fm frontmatter
		if err := toml.Unmarshal(m[1], &fm); err != nil {
			return nil // unparseable frontmatter is not checkable
		}
		if fm.Codebase == "" || fm.Date == nil {
			return nil
		}
		date, err := coerceDate(fm.Date)
		if err != nil {
			return nil
		}
		title := fm.Title
		if title == "" {
			title = strings.TrimSuffix(d.Name(), ".md")
		}
		pages = append(pages, Page{
			Path:        path,
			Title:       title,
			Date:        date,
			CodebaseURL: fm.Codebase,
			Draft:       fm.Draft,
			Index:       d.Name() == "_index.md",
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pages, nil
}

// coerceDate accepts either a native TOML datetime or an ISO 8601 string.
func coerceDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d.UTC(), nil
	case string:
		s := strings.TrimSpace(d)
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("freshness: unrecognized date %q", s)
	default:
		return time.Time{}, fmt.Errorf("freshness: unsupported date type %T", v)
	}
}

// CommitLookup returns the newest commit date touching a codebase URL.
type CommitLookup func(ctx context.Context, codebaseURL string) (time.Time, error)

// GitHubLookup asks the gh CLI for the most recent commit touching the
// path a blob/tree URL points at. Requires an authenticated gh.
func GitHubLookup(ctx context.Context, codebaseURL string) (time.Time, error) {
	owner, repo, path, err := extractGitHubPath(codebaseURL)
	if err != nil {
		return time.Time{}, err
	}
	cmd := exec.CommandContext(ctx, "gh", "api",
		fmt.Sprintf("/repos/%s/%s/commits", owner, repo),
		"-q", ".[0].commit.committer.date",
		"-f", "path="+path,
		"-f", "per_page=1",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return time.Time{}, fmt.Errorf("freshness: gh api %s/%s: %v: %s", owner, repo, err, strings.TrimSpace(stderr.String()))
	}
	raw := strings.TrimSpace(stdout.String())
	if raw == "" {
		return time.Time{}, fmt.Errorf("freshness: no commits found for path %s", path)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("freshness: parse commit date %q: %w", raw, err)
	}
	return t.UTC(), nil
}

func extractGitHubPath(url string) (owner, repo, path string, err error) {
	m := githubPathPattern.FindStringSubmatch(url)
	if m == nil {
		return "", "", "", fmt.Errorf("freshness: cannot parse GitHub URL: %s", url)
	}
	return m[1], m[2], m[3], nil
}

// Checker runs commit-date lookups with a bounded worker pool.
type Checker struct {
	Workers     int          // parallel lookups; default 4
	SkipIndexes bool         // skip _index.md pages
	Lookup      CommitLookup // defaults to GitHubLookup
}

// Check resolves every page's codebase commit date. Lookup failures are
// recorded per page, never fatal; results keep the page scan order.
func (c Checker) Check(ctx context.Context, pages []Page) []Result {
	lookup := c.Lookup
	if lookup == nil {
		lookup = GitHubLookup
	}
	workers := c.Workers
	if workers <= 0 {
		workers = 4
	}

	checked := pages
	if c.SkipIndexes {
		checked = nil
		for _, p := range pages {
			if !p.Index {
				checked = append(checked, p)
			}
		}
	}

	results := make([]Result, len(checked))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, page := range checked {
		i, page := i, page
		g.Go(func() error {
			last, err := lookup(ctx, page.CodebaseURL)
			if err != nil {
				results[i] = Result{Page: page, Err: err}
				return nil
			}
			results[i] = Result{Page: page, LastCommit: last, Stale: last.After(page.Date)}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures live in results
	return results
}
