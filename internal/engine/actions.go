package engine

import (
	"fmt"

	"github.com/stayware/priceflow/internal/rules"
)

// applyAction computes one action's effect starting from the price the rule
// entered evaluation with. Sibling actions in the same rule all start from
// that same entry price; composing their effects is the calculator's job.
// The computed price is clamped to >= 0. A malformed action value is
// reported on the result, never raised.
func applyAction(action rules.Action, entryPrice float64) ActionResult {
	result := ActionResult{
		ActionType:    action.Type,
		OriginalValue: entryPrice,
		NewValue:      entryPrice,
	}

	if !action.Type.IsPricing() {
		// Reserved non-pricing types are documented no-ops.
		result.Success = true
		return result
	}

	value, ok := toFloat64(action.Value)
	if !ok {
		result.Error = fmt.Sprintf("action %s: value %v is not numeric", action.Type, action.Value)
		return result
	}

	var price float64
	switch action.Type {
	case rules.ActionMultiplyPrice:
		price = entryPrice * value
	case rules.ActionAddAmount:
		price = entryPrice + value
	case rules.ActionSubtractAmount:
		price = entryPrice - value
	case rules.ActionSetPrice:
		price = value
	case rules.ActionSetMinimumPrice:
		price = maxFloat(entryPrice, value)
	case rules.ActionSetMaximumPrice:
		price = minFloat(entryPrice, value)
	}

	if price < 0 {
		price = 0
	}

	result.Success = true
	result.NewValue = price
	return result
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
