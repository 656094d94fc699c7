package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/docstack/swagger2insomnia/internal/mermaid"
	"github.com/spf13/cobra"
)

func newLintMermaidCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint-mermaid",
		Short: "Validate mermaid diagrams embedded in markdown files",
		Long: "Extract every ```mermaid block under a content directory and validate " +
			"each one with the mermaid CLI renderer (mmdc).",
		RunE: func(cmd *cobra.Command, args []string) error {
			contentDir, err := cmd.Flags().GetString("content-dir")
			if err != nil {
				return err
			}
			workers, err := cmd.Flags().GetInt("workers")
			if err != nil {
				return err
			}
			mmdc, err := cmd.Flags().GetString("mmdc")
			if err != nil {
				return err
			}
			timeout, err := cmd.Flags().GetDuration("timeout")
			if err != nil {
				return err
			}
			return runLintMermaid(cmd, contentDir, workers, mmdc, timeout)
		},
	}

	cmd.Flags().String("content-dir", "content", "Directory to scan for markdown files")
	cmd.Flags().Int("workers", 4, "Parallel validation workers")
	cmd.Flags().String("mmdc", "", "Path to the mermaid CLI (auto-detected when omitted)")
	cmd.Flags().Duration("timeout", 60*time.Second, "Per-diagram validation timeout")

	return cmd
}

func runLintMermaid(cmd *cobra.Command, contentDir string, workers int, mmdc string, timeout time.Duration) error {
	if info, err := os.Stat(contentDir); err != nil || !info.IsDir() {
		return newUsageErrorf("lint-mermaid: content directory %q not found", contentDir)
	}

	diagrams, err := mermaid.FindDiagrams(contentDir)
	if err != nil {
		return fmt.Errorf("scan %s: %w", contentDir, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Found %d mermaid diagram(s)\n", len(diagrams))
	if len(diagrams) == 0 {
		return nil
	}

	command := mmdc
	if command == "" {
		command = mermaid.ResolveCommand(".")
	}
	if workers <= 0 {
		workers = 4
	}

	linter := mermaid.Linter{Command: command, Workers: workers, Timeout: timeout}
	fmt.Fprintf(cmd.OutOrStdout(), "Validating with %d parallel worker(s) using: %s\n", workers, command)

	failures, err := linter.Run(cmd.Context(), diagrams)
	if err != nil {
		if errors.Is(err, mermaid.ErrRendererMissing) {
			return newUsageErrorf("lint-mermaid: %v (install with: npm install @mermaid-js/mermaid-cli)", err)
		}
		return err
	}

	if len(failures) > 0 {
		for _, f := range failures {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s:%d\n    %s\n", f.Path, f.Line, f.Message)
		}
		return fmt.Errorf("lint-mermaid: %d of %d diagram(s) failed validation", len(failures), len(diagrams))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "All diagrams valid!")
	return nil
}
