package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/systmms/extsecrets/cmd/extsecrets/commands"
	"github.com/systmms/extsecrets/internal/config"
	"github.com/systmms/extsecrets/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	var (
		configFile string
		noColor    bool
		debug      bool
	)

	// Create config placeholder
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "extsecrets",
		Short: "Mirror external secret stores into the local environment",
		Long: `extsecrets connects to configured secret stores, mirrors their
secrets into an in-memory snapshot, and serves lookups from that snapshot.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize logger with parsed flags
			logger := logging.New(debug, noColor)

			cfg.Path = configFile
			cfg.Logger = logger
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "extsecrets.yaml", "Config file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	// Add commands
	rootCmd.AddCommand(
		commands.NewStoresCommand(cfg),
		commands.NewCheckCommand(cfg),
		commands.NewSyncCommand(cfg),
		commands.NewGetCommand(cfg),
	)

	return rootCmd.Execute()
}
