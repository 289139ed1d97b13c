package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stayware/priceflow/internal/cli"
	"github.com/stayware/priceflow/internal/client"
)

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a pricing rule",
	Long: `Get details of a specific pricing rule.

Examples:
  priceflow get 7d7f3a9c
  priceflow get 7d7f3a9c --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		profileCfg, _, err := cli.GetProfileConfig(profile, baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(profileCfg.BaseURL, profileCfg.APIKey)

		ctx := context.Background()
		def, err := c.GetRule(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get rule: %w", err)
		}

		if !quiet {
			return cli.PrintRule(def, cli.OutputFormat(format))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
