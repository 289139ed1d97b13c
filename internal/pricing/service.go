// Package pricing composes the rule store, context builder, and evaluation
// engine into the quote operation the booking flow calls. Its contract
// mirrors the engine's: a caller always gets a usable PricingResult, never
// an error.
package pricing

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/stayware/priceflow/internal/booking"
	"github.com/stayware/priceflow/internal/engine"
	"github.com/stayware/priceflow/internal/recorder"
	"github.com/stayware/priceflow/internal/rules"
	"github.com/stayware/priceflow/internal/store"
	"github.com/stayware/priceflow/internal/telemetry"
)

// QuoteRequest carries the stay being priced and whatever market signals the
// caller has available.
type QuoteRequest struct {
	Stay    booking.Stay    `json:"stay"`
	Signals booking.Signals `json:"signals"`
}

// Service executes quotes. Safe for concurrent use: all per-call state lives
// on the stack.
type Service struct {
	store      store.Store
	builder    *booking.Builder
	calculator *engine.Calculator
	recorder   recorder.Recorder
	logger     zerolog.Logger
}

func NewService(st store.Store, builder *booking.Builder, calc *engine.Calculator, rec recorder.Recorder, logger zerolog.Logger) *Service {
	if rec == nil {
		rec = recorder.Nop{}
	}
	return &Service{
		store:      st,
		builder:    builder,
		calculator: calc,
		recorder:   rec,
		logger:     logger,
	}
}

// Quote prices one stay. If rule retrieval fails the quote degrades to the
// unmodified base price with an empty trace; the error is logged and counted
// but never surfaced to the booking flow.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) *engine.PricingResult {
	start := time.Now()
	ectx := s.builder.Build(req.Stay, req.Signals)

	defs, err := s.store.GetActiveRules(ctx, ectx.OrganizationID, ectx.PropertyID, rules.CategoryPricing)
	if err != nil {
		s.logger.Error().Err(err).
			Str("organization_id", ectx.OrganizationID).
			Str("property_id", ectx.PropertyID).
			Msg("rule retrieval failed, degrading to base price")
		telemetry.QuotesTotal.WithLabelValues("degraded").Inc()
		telemetry.QuoteDuration.Observe(time.Since(start).Seconds())

		result := &engine.PricingResult{
			OriginalPrice: ectx.CurrentPrice,
			FinalPrice:    ectx.CurrentPrice,
			AppliedRules:  []engine.RuleResult{},
			Context:       ectx,
		}
		s.recorder.Record(ctx, result)
		return result
	}

	result := s.calculator.Calculate(defs, ectx)

	telemetry.QuotesTotal.WithLabelValues("ok").Inc()
	telemetry.QuoteDuration.Observe(time.Since(start).Seconds())
	for _, rule := range result.AppliedRules {
		telemetry.RulesExecuted.WithLabelValues(ruleOutcome(rule)).Inc()
	}

	s.recorder.Record(ctx, result)
	return result
}

func ruleOutcome(r engine.RuleResult) string {
	switch {
	case !r.Success:
		return "failed"
	case r.Executed:
		return "matched"
	default:
		return "skipped"
	}
}
