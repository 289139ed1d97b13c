package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stayware/priceflow/internal/cli"
	"github.com/stayware/priceflow/internal/client"
	"github.com/stayware/priceflow/internal/rules"
)

var (
	exportOrg    string
	exportOutput string
)

// ExportFormat represents the structure for exporting rules
type ExportFormat struct {
	Rules []rules.Definition `yaml:"rules" json:"rules"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export rules to a file",
	Long: `Export pricing rules to a YAML or JSON file.

Examples:
  priceflow export --org org-1 --output rules.yaml
  priceflow export --org org-1 --output rules.json --format json
  priceflow export > backup.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		profileCfg, _, err := cli.GetProfileConfig(profile, baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(profileCfg.BaseURL, profileCfg.APIKey)

		ctx := context.Background()
		defs, err := c.ListRules(ctx, exportOrg)
		if err != nil {
			return fmt.Errorf("failed to list rules: %w", err)
		}

		exportData := ExportFormat{Rules: defs}

		var output *os.File
		if exportOutput == "" || exportOutput == "-" {
			output = os.Stdout
		} else {
			output, err = os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer output.Close()
		}

		switch format {
		case "json":
			encoder := json.NewEncoder(output)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(exportData); err != nil {
				return fmt.Errorf("failed to encode JSON: %w", err)
			}
		case "yaml", "table":
			// Default to YAML for export
			encoder := yaml.NewEncoder(output)
			defer encoder.Close()
			encoder.SetIndent(2)
			if err := encoder.Encode(exportData); err != nil {
				return fmt.Errorf("failed to encode YAML: %w", err)
			}
		default:
			return fmt.Errorf("unsupported export format: %s", format)
		}

		if exportOutput != "" && exportOutput != "-" && !quiet {
			fmt.Fprintf(os.Stderr, "Successfully exported %d rule(s) to %s\n", len(defs), exportOutput)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportOrg, "org", "", "Filter by organization id")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}
