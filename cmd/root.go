package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "civicarchive",
	Short: "Archive legislative resolutions from a municipal records portal",
	Long: `civicarchive crawls the resolution pages of an IQM2 municipal records
portal, extracts structured facts (metadata, narrative sections, attachments,
meeting history and roll-call votes), resolves free-text names to stable
identities, and persists everything to a relational store.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
