package engine

import "github.com/stayware/priceflow/internal/rules"

// ActionResult records the effect of a single action. OriginalValue is the
// price the rule entered with, NewValue the price this action would produce.
type ActionResult struct {
	ActionType    rules.ActionType `json:"actionType"`
	Success       bool             `json:"success"`
	OriginalValue float64          `json:"originalValue"`
	NewValue      float64          `json:"newValue"`
	Error         string           `json:"error,omitempty"`
}

// RuleResult records one rule's evaluation for the audit trace. Executed is
// true only when the rule's conditions matched; Success is false only when
// the rule failed unexpectedly. A non-matching rule is a successful result.
type RuleResult struct {
	RuleID            string         `json:"ruleId"`
	RuleName          string         `json:"ruleName"`
	Executed          bool           `json:"executed"`
	Success           bool           `json:"success"`
	ExecutionTimeMs   float64        `json:"executionTimeMs"`
	ConditionsMatched bool           `json:"conditionsMatched"`
	ActionsApplied    []ActionResult `json:"actionsApplied"`
	Error             string         `json:"error,omitempty"`
}

// PricingResult is the outcome of one evaluation pass. AppliedRules lists
// every rule considered in execution order, matched or not, so a billing
// audit can replay exactly what the engine saw.
type PricingResult struct {
	OriginalPrice         float64      `json:"originalPrice"`
	FinalPrice            float64      `json:"finalPrice"`
	PriceChange           float64      `json:"priceChange"`
	PriceChangePercentage float64      `json:"priceChangePercentage"`
	AppliedRules          []RuleResult `json:"appliedRules"`
	TotalExecutionTimeMs  float64      `json:"totalExecutionTimeMs"`
	Context               *Context     `json:"context,omitempty"`
}

// priceEffect returns the rule's overall price effect and whether it has one.
// When a rule carries several pricing actions, only the last successfully
// executed one counts; earlier effects are computed for the trace but
// deliberately discarded, not accumulated.
func (r *RuleResult) priceEffect() (float64, bool) {
	if !r.Executed || !r.Success {
		return 0, false
	}
	for i := len(r.ActionsApplied) - 1; i >= 0; i-- {
		a := r.ActionsApplied[i]
		if a.Success && a.ActionType.IsPricing() {
			return a.NewValue, true
		}
	}
	return 0, false
}
