// Package cmd implements the command-line interface for motscan.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/motscan/motscan/cmd/scan"
	cmdscheduler "github.com/motscan/motscan/cmd/scheduler"
	cmdsources "github.com/motscan/motscan/cmd/sources"
	"github.com/motscan/motscan/internal/config"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug logging for all commands.
	debug bool

	// rootCmd represents the root command for the motscan CLI.
	rootCmd = &cobra.Command{
		Use:   "motscan",
		Short: "News word-frequency scanner",
		Long:  `Scans configured news sites and extracts per-word frequency statistics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env file early so environment variables are available.
	_ = godotenv.Load()

	// Parse flags early to get the config path before loading.
	_ = rootCmd.ParseFlags(os.Args[1:])

	config.Setup(cfgFile)
	if debug {
		os.Setenv("MOTSCAN_LOGGING_LEVEL", "debug")
	}

	return rootCmd.ExecuteContext(context.Background())
}

// init initializes the root command and its subcommands.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("motscan version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(scan.Command())
	rootCmd.AddCommand(cmdscheduler.Command())
	rootCmd.AddCommand(cmdsources.Command())
}
