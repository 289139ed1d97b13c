package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stayware/priceflow/internal/booking"
	"github.com/stayware/priceflow/internal/engine"
	"github.com/stayware/priceflow/internal/rules"
	"github.com/stayware/priceflow/internal/store"
)

// failingStore simulates a storage outage.
type failingStore struct{}

func (failingStore) GetActiveRules(context.Context, string, string, rules.Category) ([]rules.Definition, error) {
	return nil, errors.New("connection refused")
}
func (failingStore) ListRules(context.Context, string) ([]rules.Definition, error) {
	return nil, errors.New("connection refused")
}
func (failingStore) GetRule(context.Context, string) (*rules.Definition, error) {
	return nil, errors.New("connection refused")
}
func (failingStore) UpsertRule(context.Context, rules.Definition) error {
	return errors.New("connection refused")
}
func (failingStore) DeleteRule(context.Context, string) error { return errors.New("connection refused") }
func (failingStore) Close() error                             { return nil }

type captureRecorder struct {
	results []*engine.PricingResult
}

func (c *captureRecorder) Record(_ context.Context, result *engine.PricingResult) {
	c.results = append(c.results, result)
}

func quoteRequest() QuoteRequest {
	base := 100.0
	occupancy := 90.0
	return QuoteRequest{
		Stay: booking.Stay{
			OrganizationID: "org-1",
			PropertyID:     "prop-1",
			CheckIn:        time.Date(2026, time.July, 18, 0, 0, 0, 0, time.UTC),
			CheckOut:       time.Date(2026, time.July, 21, 0, 0, 0, 0, time.UTC),
		},
		Signals: booking.Signals{BasePrice: &base, OccupancyRate: &occupancy},
	}
}

func newTestService(st store.Store, rec *captureRecorder) *Service {
	return NewService(
		st,
		booking.NewBuilder(0),
		engine.NewCalculator(0),
		rec,
		zerolog.Nop(),
	)
}

func TestQuote_AppliesMatchingRules(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	if err := st.UpsertRule(ctx, rules.Definition{
		ID:       "uplift",
		Name:     "high occupancy uplift",
		Category: rules.CategoryPricing,
		Priority: 1,
		Scope:    rules.Scope{OrganizationID: "org-1"},
		Conditions: []rules.Condition{
			{Type: rules.ConditionOccupancy, Operator: rules.OpGreaterThan, Value: 80.0},
		},
		Actions: []rules.Action{{Type: rules.ActionMultiplyPrice, Value: 1.2}},
		Active:  true,
	}); err != nil {
		t.Fatal(err)
	}

	rec := &captureRecorder{}
	svc := newTestService(st, rec)

	result := svc.Quote(ctx, quoteRequest())

	if result.FinalPrice != 120 {
		t.Errorf("FinalPrice = %v, want 120", result.FinalPrice)
	}
	if len(result.AppliedRules) != 1 || !result.AppliedRules[0].Executed {
		t.Errorf("expected one executed rule, got %+v", result.AppliedRules)
	}
	if len(rec.results) != 1 {
		t.Fatalf("recorder should see every evaluation, got %d", len(rec.results))
	}
}

func TestQuote_StoreFailureDegradesToBasePrice(t *testing.T) {
	rec := &captureRecorder{}
	svc := newTestService(failingStore{}, rec)

	result := svc.Quote(context.Background(), quoteRequest())

	if result == nil {
		t.Fatal("quote must never return nil")
	}
	if result.FinalPrice != 100 || result.OriginalPrice != 100 {
		t.Errorf("degraded quote must keep the base price, got %+v", result)
	}
	if len(result.AppliedRules) != 0 {
		t.Errorf("degraded quote must carry an empty trace, got %d entries", len(result.AppliedRules))
	}
	if len(rec.results) != 1 {
		t.Error("degraded evaluations are still recorded")
	}
}

func TestQuote_NilRecorderDefaultsToNop(t *testing.T) {
	svc := NewService(store.NewMemoryStore(), booking.NewBuilder(0), engine.NewCalculator(0), nil, zerolog.Nop())

	// Must not panic.
	result := svc.Quote(context.Background(), quoteRequest())
	if result == nil {
		t.Fatal("expected a result")
	}
}

func TestQuote_NoApplicableRules(t *testing.T) {
	rec := &captureRecorder{}
	svc := newTestService(store.NewMemoryStore(), rec)

	result := svc.Quote(context.Background(), quoteRequest())

	if result.FinalPrice != 100 {
		t.Errorf("FinalPrice = %v, want untouched base 100", result.FinalPrice)
	}
	if result.PriceChange != 0 {
		t.Errorf("PriceChange = %v, want 0", result.PriceChange)
	}
}
