package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nosecrets",
	Short: "Fast offline secret scanner",
	Long: `nosecrets finds credentials in local files: API keys, tokens, and other
secrets matched against a built-in rule catalog, entirely offline.`,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(ignoreCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
