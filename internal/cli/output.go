package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/stayware/priceflow/internal/engine"
	"github.com/stayware/priceflow/internal/rules"
)

// OutputFormat specifies the output format for CLI commands
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

// PrintRules outputs rules in the specified format
func PrintRules(defs []rules.Definition, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(defs)
	case FormatYAML:
		return printYAML(defs)
	case FormatTable:
		return printRuleTable(defs)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// PrintRule outputs a single rule in the specified format
func PrintRule(def *rules.Definition, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(def)
	case FormatYAML:
		return printYAML(def)
	case FormatTable:
		return printRuleTable([]rules.Definition{*def})
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// PrintQuote outputs a pricing result in the specified format
func PrintQuote(result *engine.PricingResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(result)
	case FormatYAML:
		return printYAML(result)
	case FormatTable:
		return printQuoteTable(result)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	// Wrap rule slices in a "rules" key for consistency with the API
	if defs, ok := data.([]rules.Definition); ok {
		return encoder.Encode(map[string][]rules.Definition{"rules": defs})
	}
	return encoder.Encode(data)
}

func printYAML(data interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(data)
}

func printRuleTable(defs []rules.Definition) error {
	table := tablewriter.NewWriter(os.Stdout)

	table.Header("ID", "Name", "Category", "Priority", "Org", "Property", "Active", "Updated At")

	for _, def := range defs {
		active := "false"
		if def.Active {
			active = "true"
		}

		name := def.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}

		property := def.Scope.PropertyID
		if property == "" {
			property = "*"
		}

		table.Append(
			def.ID,
			name,
			string(def.Category),
			fmt.Sprintf("%d", def.Priority),
			def.Scope.OrganizationID,
			property,
			active,
			def.UpdatedAt.Format("2006-01-02 15:04"),
		)
	}

	return table.Render()
}

func printQuoteTable(result *engine.PricingResult) error {
	table := tablewriter.NewWriter(os.Stdout)

	table.Header("Rule", "Executed", "Success", "Error")

	for _, rr := range result.AppliedRules {
		errMsg := rr.Error
		if len(errMsg) > 40 {
			errMsg = errMsg[:37] + "..."
		}
		table.Append(
			rr.RuleName,
			fmt.Sprintf("%t", rr.Executed),
			fmt.Sprintf("%t", rr.Success),
			errMsg,
		)
	}

	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("\nOriginal price: %.2f\nFinal price:    %.2f\nChange:         %+.2f (%+.2f%%)\n",
		result.OriginalPrice,
		result.FinalPrice,
		result.PriceChange,
		result.PriceChangePercentage,
	)
	return nil
}
