package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "postwire",
	Short: "Translate between model output documents and routed posts",
	Long:  "PostWire converts the JSON field documents a language model produces into routed Post objects and back, streaming fields out as they complete.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
