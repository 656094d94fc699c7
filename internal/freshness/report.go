package freshness

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

type staleDetail struct {
	Filepath     string `json:"filepath"`
	Title        string `json:"title"`
	CodebaseURL  string `json:"codebase_url"`
	DocDate      string `json:"doc_date"`
	CodebaseDate string `json:"codebase_date"`
	IsDraft      bool   `json:"is_draft"`
}

// FormatReport renders results as a markdown freshness report: a summary,
// a stale table (newest codebase change first), a fresh table (by title),
// lookup errors, and a JSON details block for automation.
func FormatReport(results []Result, now time.Time) string {
	var stale, fresh, failed []Result
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed = append(failed, r)
		case r.Stale:
			stale = append(stale, r)
		default:
			fresh = append(fresh, r)
		}
	}

	var b strings.Builder
	b.WriteString("# Documentation Freshness Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", now.Format(time.RFC3339))

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- **Total pages checked**: %d\n", len(results))
	fmt.Fprintf(&b, "- **Stale (needs review)**: %d\n", len(stale))
	fmt.Fprintf(&b, "- **Fresh**: %d\n", len(fresh))
	fmt.Fprintf(&b, "- **Errors**: %d\n\n", len(failed))

	if len(stale) > 0 {
		sort.Slice(stale, func(i, j int) bool {
			return stale[i].LastCommit.After(stale[j].LastCommit)
		})
		b.WriteString("## Pages Requiring Review\n\n")
		writeTable(&b, stale, "**STALE**")
	}

	if len(fresh) > 0 {
		sort.Slice(fresh, func(i, j int) bool {
			return fresh[i].Page.Title < fresh[j].Page.Title
		})
		b.WriteString("## Fresh Pages\n\n")
		writeTable(&b, fresh, "OK")
	}

	if len(failed) > 0 {
		b.WriteString("## Errors\n\n")
		for _, r := range failed {
			fmt.Fprintf(&b, "- **%s**: %v\n", r.Page.Title, r.Err)
		}
		b.WriteString("\n")
	}

	if len(stale) > 0 {
		details := make([]staleDetail, 0, len(stale))
		for _, r := range stale {
			details = append(details, staleDetail{
				Filepath:     r.Page.Path,
				Title:        r.Page.Title,
				CodebaseURL:  r.Page.CodebaseURL,
				DocDate:      r.Page.Date.Format(time.RFC3339),
				CodebaseDate: r.LastCommit.Format(time.RFC3339),
				IsDraft:      r.Page.Draft,
			})
		}
		b.WriteString("## Stale Page Details (for automation)\n\n")
		b.WriteString("```json\n")
		if data, err := json.MarshalIndent(details, "", "  "); err == nil {
			b.Write(data)
			b.WriteString("\n")
		}
		b.WriteString("```\n")
	}

	return b.String()
}

func writeTable(b *strings.Builder, rows []Result, status string) {
	b.WriteString("| Page | Doc Date | Codebase Updated | Status |\n")
	b.WriteString("| ---- | -------- | ---------------- | ------ |\n")
	for _, r := range rows {
		title := r.Page.Title
		if r.Page.Draft {
			title += " [DRAFT]"
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n",
			title,
			r.Page.Date.Format("2006-01-02"),
			r.LastCommit.Format("2006-01-02"),
			status,
		)
	}
	b.WriteString("\n")
}
