package engine

import (
	"fmt"
	"time"

	"github.com/stayware/priceflow/internal/rules"
)

// executeRule evaluates one rule against the context and returns its trace
// entry. A non-match is a successful result with Executed=false. The whole
// rule is wrapped in a failure boundary: an unexpected panic while matching
// or acting yields a failed result instead of propagating, so one bad rule
// can never corrupt its siblings. Actions are pure computations, so a
// failure partway through leaves no external effects behind.
func executeRule(def rules.Definition, ctx *Context) (result RuleResult) {
	start := time.Now()
	result = RuleResult{
		RuleID:   def.ID,
		RuleName: def.Name,
	}

	defer func() {
		result.ExecutionTimeMs = float64(time.Since(start).Microseconds()) / 1000
		if r := recover(); r != nil {
			result = RuleResult{
				RuleID:          def.ID,
				RuleName:        def.Name,
				ExecutionTimeMs: float64(time.Since(start).Microseconds()) / 1000,
				Error:           fmt.Sprintf("rule execution failed: %v", r),
			}
		}
	}()

	if !matchesAllConditions(ctx, def.Conditions) {
		result.Success = true
		return result
	}

	result.ConditionsMatched = true
	result.Executed = true
	result.Success = true

	// Every action starts from the price the rule entered with. A failing
	// action is recorded and its siblings still run.
	result.ActionsApplied = make([]ActionResult, 0, len(def.Actions))
	for _, action := range def.Actions {
		result.ActionsApplied = append(result.ActionsApplied, applyAction(action, ctx.CurrentPrice))
	}

	return result
}
