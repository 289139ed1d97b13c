package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stayware/priceflow/internal/cli"
	"github.com/stayware/priceflow/internal/client"
	"github.com/stayware/priceflow/internal/rules"
)

var createFile string

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create or replace a pricing rule",
	Long: `Create or replace a pricing rule from a YAML or JSON file.

The file holds a single rule definition. If the definition carries no id,
the server assigns one.

Examples:
  priceflow create -f rule.yaml
  priceflow create -f rule.json --profile staging`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if createFile == "" {
			return fmt.Errorf("--file is required")
		}

		data, err := os.ReadFile(createFile)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		var def rules.Definition
		if err := yaml.Unmarshal(data, &def); err != nil {
			return fmt.Errorf("failed to parse file: %w", err)
		}

		profileCfg, _, err := cli.GetProfileConfig(profile, baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(profileCfg.BaseURL, profileCfg.APIKey)

		ctx := context.Background()
		id, err := c.UpsertRule(ctx, def)
		if err != nil {
			return fmt.Errorf("failed to create rule: %w", err)
		}

		if !quiet {
			fmt.Printf("Successfully created rule '%s' (id: %s)\n", def.Name, id)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringVarP(&createFile, "file", "f", "", "Rule definition file (YAML or JSON)")
}
