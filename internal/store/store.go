package store

import (
	"context"
	"errors"

	"github.com/stayware/priceflow/internal/rules"
)

// ErrNotFound is returned when a rule id does not exist.
var ErrNotFound = errors.New("rule not found")

// Store defines rule persistence. Implementations must be safe for
// concurrent use. The pricing engine consumes GetActiveRules once per
// evaluation and never writes; the CRUD surface exists for the authoring
// API and CLI.
type Store interface {
	// GetActiveRules returns the active rules of a category whose scope
	// admits the organization/property pair, in stored order.
	GetActiveRules(ctx context.Context, organizationID, propertyID string, category rules.Category) ([]rules.Definition, error)

	// ListRules returns every rule for an organization, active or not.
	// An empty organizationID returns all rules.
	ListRules(ctx context.Context, organizationID string) ([]rules.Definition, error)

	// GetRule retrieves a single rule by id. Returns ErrNotFound if absent.
	GetRule(ctx context.Context, id string) (*rules.Definition, error)

	// UpsertRule creates or replaces a rule by id.
	UpsertRule(ctx context.Context, def rules.Definition) error

	// DeleteRule removes a rule by id. Deleting a missing rule is a no-op.
	DeleteRule(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
