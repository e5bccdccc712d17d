// Package cmd holds the CLI entry points (cron, import, migrate) built on
// cobra. Custom packages add commands via Register from init().
package cmd

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "LockPoint storefront management CLI",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		figure.NewFigure("storefront.GO", "", true).Print()
		fmt.Println()
	},
}

// Execute runs the CLI. Registered custom commands are attached first.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
