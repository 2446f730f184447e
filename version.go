package main

import (
	"fmt"

	"github.com/cristianradulescu/beautify-ls/internal/config"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s %s\n", config.Name, config.Version)
	},
}
