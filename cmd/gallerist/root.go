package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gallerist/internal/flags"
	"gallerist/internal/logger"
)

func newRootCmd() *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "gallerist",
		Short: "Gallerist builds browsable HTML galleries from images in cloud storage.",
		Long: `Gallerist scans a storage bucket for images and generates a single
self-contained HTML page with pagination, search and a date filter.
Configure a provider (gcp, aws or minio) once, then generate galleries
from any bucket you can reach.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewLogger(debug)
			app, err := newApp(log, debug)
			if err != nil {
				return err
			}
			cmd.SetContext(appIntoContext(cmd.Context(), app))
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&debug, flags.Debug, flags.DebugShort, false, "Enable debug logging")

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newBucketCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
