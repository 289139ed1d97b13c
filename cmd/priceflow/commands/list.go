package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stayware/priceflow/internal/cli"
	"github.com/stayware/priceflow/internal/client"
	"github.com/stayware/priceflow/internal/rules"
)

var (
	listOrg        string
	listActiveOnly bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List pricing rules",
	Long: `List pricing rules, optionally filtered by organization.

Examples:
  priceflow list
  priceflow list --org org-1
  priceflow list --org org-1 --format json
  priceflow list --org org-1 --active-only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		profileCfg, _, err := cli.GetProfileConfig(profile, baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(profileCfg.BaseURL, profileCfg.APIKey)

		ctx := context.Background()
		defs, err := c.ListRules(ctx, listOrg)
		if err != nil {
			return fmt.Errorf("failed to list rules: %w", err)
		}

		if listActiveOnly {
			var active []rules.Definition
			for _, def := range defs {
				if def.Active {
					active = append(active, def)
				}
			}
			defs = active
		}

		if !quiet {
			if len(defs) == 0 {
				fmt.Println("No rules found")
				return nil
			}
			return cli.PrintRules(defs, cli.OutputFormat(format))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listOrg, "org", "", "Filter by organization id")
	listCmd.Flags().BoolVar(&listActiveOnly, "active-only", false, "Show only active rules")
}
