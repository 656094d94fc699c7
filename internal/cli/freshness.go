package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/docstack/swagger2insomnia/internal/freshness"
	"github.com/spf13/cobra"
)

func newCheckFreshnessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-freshness",
		Short: "Report documentation pages older than the code they describe",
		Long: "Scan markdown pages for codebase provenance frontmatter, look up the " +
			"latest commit touching each referenced path, and report pages whose " +
			"code changed after the page was last updated.",
		RunE: func(cmd *cobra.Command, args []string) error {
			contentDir, err := cmd.Flags().GetString("content-dir")
			if err != nil {
				return err
			}
			workers, err := cmd.Flags().GetInt("workers")
			if err != nil {
				return err
			}
			skipIndexes, err := cmd.Flags().GetBool("skip-indexes")
			if err != nil {
				return err
			}
			return runCheckFreshness(cmd, contentDir, workers, skipIndexes)
		},
	}

	cmd.Flags().String("content-dir", "content", "Directory to scan for markdown pages")
	cmd.Flags().Int("workers", 4, "Parallel commit lookups")
	cmd.Flags().Bool("skip-indexes", false, "Skip _index.md section pages")

	return cmd
}

func runCheckFreshness(cmd *cobra.Command, contentDir string, workers int, skipIndexes bool) error {
	if info, err := os.Stat(contentDir); err != nil || !info.IsDir() {
		return newUsageErrorf("check-freshness: content directory %q not found", contentDir)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Scanning %s for checkable pages...\n", contentDir)
	pages, err := freshness.ScanPages(contentDir)
	if err != nil {
		return fmt.Errorf("scan %s: %w", contentDir, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Found %d page(s) with codebase references\n", len(pages))

	checker := freshness.Checker{Workers: workers, SkipIndexes: skipIndexes}
	results := checker.Check(cmd.Context(), pages)

	fmt.Fprint(cmd.OutOrStdout(), freshness.FormatReport(results, time.Now().UTC()))

	stale := 0
	for _, r := range results {
		if r.Err == nil && r.Stale {
			stale++
		}
	}
	if stale > 0 {
		return fmt.Errorf("check-freshness: %d page(s) stale", stale)
	}
	return nil
}
