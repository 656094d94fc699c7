package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const defaultConfigFile = "swagger2insomnia.yaml"

const sampleConfigYAML = `# swagger2insomnia configuration.
# Flags override values set here.

# Path to the Swagger 2.0 JSON document.
input: api.json

# Output file for the generated collection. Omit to write to stdout.
# out: collection.yaml

# Collection name. Derived from the document title and version when omitted.
# name: My API (1.0.0)

# Sub-environment settings.
# envName: Default
# host: api.example.com
# apiKey: replace-me
# color: "#ff4a00"

# verbose: false
`

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Long:  "Write a commented starter config file for the generate command.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cmd.Flags().GetString("out")
			if err != nil {
				return err
			}
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}
			return runInit(out, force)
		},
	}

	cmd.Flags().String("out", defaultConfigFile, "Where to write the config file")
	cmd.Flags().Bool("force", false, "Overwrite an existing file")

	return cmd
}

func runInit(out string, force bool) error {
	abs, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	if !force {
		if _, err := os.Stat(abs); err == nil {
			return newUsageErrorf("init: %s already exists (use --force to overwrite)", out)
		}
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp := abs + ".tmp"
	if err := os.WriteFile(tmp, []byte(sampleConfigYAML), 0o644); err != nil {
		return fmt.Errorf("write temp %s: %w", out, err)
	}
	if err := os.Rename(tmp, abs); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", out, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", abs)
	return nil
}
