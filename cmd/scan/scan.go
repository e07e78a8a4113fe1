// Package scan implements the one-shot scan command.
package scan

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/motscan/motscan/cmd/common"
)

// Command creates the scan command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Run one ingestion pass over all enabled sources",
		Long: `Fetches articles from every enabled source, extracts word-frequency
statistics and stores the results. Per-source failures are reported in the
run summary; the command only fails when the pipeline cannot start at all.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			return common.RunScan(cmd.Context(), deps)
		},
	}
}
