package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/stayware/priceflow/internal/rules"
)

// MemoryStore is an in-memory implementation of Store backed by a map and an
// RWMutex. Suitable for development, tests, and single-instance deployments.
type MemoryStore struct {
	mu    sync.RWMutex
	rules map[string]rules.Definition
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rules: make(map[string]rules.Definition)}
}

func (m *MemoryStore) GetActiveRules(ctx context.Context, organizationID, propertyID string, category rules.Category) ([]rules.Definition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]rules.Definition, 0, len(m.rules))
	for _, def := range m.rules {
		if !def.Active || def.Category != category {
			continue
		}
		if !def.Scope.AppliesTo(organizationID, propertyID) {
			continue
		}
		result = append(result, def)
	}
	sortStable(result)
	return result, nil
}

func (m *MemoryStore) ListRules(ctx context.Context, organizationID string) ([]rules.Definition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]rules.Definition, 0, len(m.rules))
	for _, def := range m.rules {
		if organizationID != "" && def.Scope.OrganizationID != organizationID {
			continue
		}
		result = append(result, def)
	}
	sortStable(result)
	return result, nil
}

func (m *MemoryStore) GetRule(ctx context.Context, id string) (*rules.Definition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	def, ok := m.rules[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &def, nil
}

func (m *MemoryStore) UpsertRule(ctx context.Context, def rules.Definition) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	def.UpdatedAt = time.Now().UTC()
	m.rules[def.ID] = def
	return nil
}

func (m *MemoryStore) DeleteRule(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.rules, id)
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}

// sortStable orders by priority then id so map iteration order never leaks
// into results.
func sortStable(defs []rules.Definition) {
	sort.SliceStable(defs, func(i, j int) bool {
		if defs[i].Priority != defs[j].Priority {
			return defs[i].Priority < defs[j].Priority
		}
		return defs[i].ID < defs[j].ID
	})
}
