package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	baseURL string
	apiKey  string
	profile string
	format  string
	quiet   bool
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "priceflow",
	Short: "CLI tool for managing pricing rules",
	Long: `Priceflow is a command-line tool for managing dynamic pricing rules
in the priceflow service.

It provides commands for creating, reading, and deleting rules, requesting
price quotes, and importing and exporting rule sets.

Examples:
  priceflow list --org org-1
  priceflow create -f rule.yaml
  priceflow get 7d7f3a9c --format json
  priceflow quote --org org-1 --check-in 2026-07-14 --base-price 120
  priceflow export --org org-1 --output rules.yaml
  priceflow import rules.yaml`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Base URL of the priceflow API")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key for authentication")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "Deployment profile (dev, staging, prod)")
	rootCmd.PersistentFlags().StringVar(&format, "format", "table", "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
}
