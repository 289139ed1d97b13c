package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stayware/priceflow/internal/cli"
	"github.com/stayware/priceflow/internal/client"
)

var (
	importDryRun bool
	importForce  bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import rules from a file",
	Long: `Import pricing rules from a YAML or JSON file.

Examples:
  priceflow import rules.yaml
  priceflow import rules.yaml --dry-run
  priceflow import rules.yaml --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		var importData ExportFormat
		if err := yaml.Unmarshal(data, &importData); err != nil {
			return fmt.Errorf("failed to parse file: %w", err)
		}

		if len(importData.Rules) == 0 {
			return fmt.Errorf("no rules found in file")
		}

		if verbose {
			fmt.Printf("Found %d rule(s) to import\n", len(importData.Rules))
		}

		// Dry run mode - just show what would be imported
		if importDryRun {
			fmt.Println("Dry run mode - the following rules would be imported:")
			for _, def := range importData.Rules {
				fmt.Printf("  - %s (priority: %d, org: %s, active: %v)\n",
					def.Name, def.Priority, def.Scope.OrganizationID, def.Active)
			}
			return nil
		}

		profileCfg, _, err := cli.GetProfileConfig(profile, baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(profileCfg.BaseURL, profileCfg.APIKey)
		ctx := context.Background()

		successCount := 0
		errorCount := 0

		for _, def := range importData.Rules {
			if verbose {
				fmt.Printf("Importing rule: %s\n", def.Name)
			}

			if _, err := c.UpsertRule(ctx, def); err != nil {
				errorCount++
				fmt.Fprintf(os.Stderr, "Failed to import rule '%s': %v\n", def.Name, err)
				if !importForce {
					return fmt.Errorf("import failed, use --force to continue on errors")
				}
			} else {
				successCount++
			}
		}

		if !quiet {
			fmt.Printf("Import complete: %d succeeded, %d failed\n", successCount, errorCount)
		}

		if errorCount > 0 {
			return fmt.Errorf("import completed with errors")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate without importing")
	importCmd.Flags().BoolVar(&importForce, "force", false, "Continue on errors")
}
