package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Execute runs the swagger2insomnia CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the root command so tests can exercise the CLI easily.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swagger2insomnia",
		Short: "Generate Insomnia collections from Swagger 2.0 documents",
		Long: "swagger2insomnia converts Swagger 2.0 JSON documents into deterministic " +
			"Insomnia 5.0 collection YAML, and ships the documentation maintenance " +
			"checks that go with them.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// Convert Cobra flag errors (like unknown flags) into friendly usage
	// errors that also show the command's help text.
	cmd.SetFlagErrorFunc(flagErrorFunc)

	cmd.PersistentFlags().StringP("config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	for _, sub := range []*cobra.Command{
		newGenerateCmd(),
		newInitCmd(),
		newLintMermaidCmd(),
		newCheckFreshnessCmd(),
	} {
		sub.SetFlagErrorFunc(flagErrorFunc)
		cmd.AddCommand(sub)
	}

	return cmd
}

func flagErrorFunc(c *cobra.Command, err error) error {
	return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
}
