package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

const version = "v0.1.0"

func newRootCmd(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:           "fxengine",
		Short:         "Currency conversion engine over a tenant's quotation catalog",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if debug && level != nil {
				level.Set(slog.LevelDebug)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		newServeCmd(logger),
		newMigrateCmd(logger),
		newConvertCmd(logger),
		newImportCmd(logger),
		newTokenCmd(),
	)
	return rootCmd
}
