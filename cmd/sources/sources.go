// Package sources implements the sources listing command.
package sources

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/motscan/motscan/cmd/common"
)

// Command creates the sources command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage configured sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(listCommand())
	return cmd
}

// listCommand creates the sources list subcommand.
func listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configured sources",
		RunE: func(_ *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Name", "Enabled", "URL", "Rate Limit", "Min Word Length", "Extra Stopwords"})

			for _, src := range deps.Sources {
				t.AppendRow(table.Row{
					src.Name,
					src.Enabled,
					src.URL,
					src.RateLimit,
					src.Text.MinWordLength,
					len(src.Text.AdditionalStopwords),
				})
			}

			t.Render()
			return nil
		},
	}
}
