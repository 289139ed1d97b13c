package engine

import (
	"math"
	"time"

	"github.com/stayware/priceflow/internal/rules"
)

// DefaultMaxRules caps how many applicable rules a single evaluation pass
// will execute. Rules beyond the cap are skipped silently, not an error.
const DefaultMaxRules = 50

// Calculator evaluates pricing rules. It holds configuration only — the
// rule set is a per-call argument, so a single Calculator is safe to share
// across concurrent evaluations.
type Calculator struct {
	maxRules int
}

// NewCalculator returns a Calculator limited to maxRules per evaluation.
// Values <= 0 fall back to DefaultMaxRules.
func NewCalculator(maxRules int) *Calculator {
	if maxRules <= 0 {
		maxRules = DefaultMaxRules
	}
	return &Calculator{maxRules: maxRules}
}

// Calculate runs one evaluation pass: filter and order the rules, execute
// them in sequence threading the price forward, and fold the trace into a
// PricingResult.
//
// The contract callers rely on: Calculate never panics and never returns an
// error. If anything outside the per-rule boundaries fails, the call
// degrades to "no rules applied" — final price equals the context's current
// price and the trace is empty, any partial trace discarded.
func (c *Calculator) Calculate(defs []rules.Definition, ctx *Context) (result *PricingResult) {
	start := time.Now()

	if ctx == nil {
		return &PricingResult{AppliedRules: []RuleResult{}}
	}

	defer func() {
		if r := recover(); r != nil {
			result = degradedResult(ctx, start)
		}
	}()

	applicable := applicableRules(orderActive(defs), ctx)
	if len(applicable) > c.maxRules {
		applicable = applicable[:c.maxRules]
	}

	price := ctx.CurrentPrice
	trace := make([]RuleResult, 0, len(applicable))

	for _, def := range applicable {
		// Each rule sees the price produced by all earlier rules: sequential
		// composition across rules, as opposed to the last-action-wins fold
		// within a single rule.
		ruleResult := executeRule(def, ctx.withPrice(price))
		trace = append(trace, ruleResult)

		if effect, ok := ruleResult.priceEffect(); ok {
			price = effect
		}
	}

	finalPrice := roundPrice(price)
	if finalPrice < 0 {
		finalPrice = 0
	}

	originalPrice := ctx.CurrentPrice
	priceChange := finalPrice - originalPrice
	changePct := 0.0
	if originalPrice != 0 {
		changePct = priceChange / originalPrice * 100
	}

	return &PricingResult{
		OriginalPrice:         originalPrice,
		FinalPrice:            finalPrice,
		PriceChange:           priceChange,
		PriceChangePercentage: changePct,
		AppliedRules:          trace,
		TotalExecutionTimeMs:  float64(time.Since(start).Microseconds()) / 1000,
		Context:               ctx,
	}
}

// degradedResult is the "apply no rules" fallback: original and final price
// both equal the running price the caller supplied, with an empty trace.
func degradedResult(ctx *Context, start time.Time) *PricingResult {
	return &PricingResult{
		OriginalPrice:        ctx.CurrentPrice,
		FinalPrice:           ctx.CurrentPrice,
		AppliedRules:         []RuleResult{},
		TotalExecutionTimeMs: float64(time.Since(start).Microseconds()) / 1000,
		Context:              ctx,
	}
}

func roundPrice(price float64) float64 {
	return math.Round(price*100) / 100
}
