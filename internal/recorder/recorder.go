// Package recorder delivers pricing execution traces to analytics sinks.
// Recording is strictly best-effort: the pricing path never blocks on, and
// never fails because of, a recorder.
package recorder

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/stayware/priceflow/internal/engine"
)

// Recorder receives the result of each evaluation pass.
type Recorder interface {
	Record(ctx context.Context, result *engine.PricingResult)
}

// Nop discards every trace.
type Nop struct{}

func (Nop) Record(context.Context, *engine.PricingResult) {}

// Multi fans a trace out to several recorders in order.
func Multi(recorders ...Recorder) Recorder {
	return multiRecorder(recorders)
}

type multiRecorder []Recorder

func (m multiRecorder) Record(ctx context.Context, result *engine.PricingResult) {
	for _, r := range m {
		r.Record(ctx, result)
	}
}

// LogRecorder writes a structured line per evaluation plus one per rule
// considered, so an audit can be reconstructed from logs alone.
type LogRecorder struct {
	logger zerolog.Logger
}

func NewLogRecorder(logger zerolog.Logger) *LogRecorder {
	return &LogRecorder{logger: logger}
}

func (l *LogRecorder) Record(ctx context.Context, result *engine.PricingResult) {
	if result == nil {
		return
	}

	evt := l.logger.Info().
		Float64("original_price", result.OriginalPrice).
		Float64("final_price", result.FinalPrice).
		Float64("price_change", result.PriceChange).
		Float64("total_ms", result.TotalExecutionTimeMs).
		Int("rules_considered", len(result.AppliedRules))
	if result.Context != nil {
		evt = evt.
			Str("organization_id", result.Context.OrganizationID).
			Str("property_id", result.Context.PropertyID)
	}
	evt.Msg("price evaluated")

	for _, rule := range result.AppliedRules {
		ruleEvt := l.logger.Debug().
			Str("rule_id", rule.RuleID).
			Str("rule_name", rule.RuleName).
			Bool("executed", rule.Executed).
			Bool("success", rule.Success).
			Float64("rule_ms", rule.ExecutionTimeMs)
		if rule.Error != "" {
			ruleEvt = ruleEvt.Str("error", rule.Error)
		}
		ruleEvt.Msg("rule considered")
	}
}
