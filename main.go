package main

import (
	"os"

	"github.com/cristianradulescu/beautify-ls/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "beautify-ls",
	Short: "Pluggable code beautification for LSP editors",
	Long:  `beautify-ls dispatches documents to configured external beautifiers, over LSP or directly from the command line`,
}

func main() {
	rootCmd.Version = config.Version

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
