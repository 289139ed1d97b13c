package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayware/priceflow/internal/rules"
)

func seedRule(id, org, property string, priority int, active bool) rules.Definition {
	return rules.Definition{
		ID:       id,
		Name:     "rule " + id,
		Category: rules.CategoryPricing,
		Priority: priority,
		Scope:    rules.Scope{OrganizationID: org, PropertyID: property},
		Actions:  []rules.Action{{Type: rules.ActionAddAmount, Value: 1.0}},
		Active:   active,
	}
}

func TestMemoryStore_UpsertGetDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	require.NoError(t, st.UpsertRule(ctx, seedRule("r1", "org-1", "", 1, true)))

	def, err := st.GetRule(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", def.ID)
	assert.False(t, def.UpdatedAt.IsZero(), "upsert should stamp UpdatedAt")

	// replace
	updated := seedRule("r1", "org-1", "", 5, true)
	require.NoError(t, st.UpsertRule(ctx, updated))
	def, err = st.GetRule(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 5, def.Priority)

	require.NoError(t, st.DeleteRule(ctx, "r1"))
	_, err = st.GetRule(ctx, "r1")
	assert.ErrorIs(t, err, ErrNotFound)

	// idempotent delete
	assert.NoError(t, st.DeleteRule(ctx, "r1"))
}

func TestMemoryStore_GetActiveRules(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	require.NoError(t, st.UpsertRule(ctx, seedRule("b", "org-1", "", 2, true)))
	require.NoError(t, st.UpsertRule(ctx, seedRule("a", "org-1", "", 1, true)))
	require.NoError(t, st.UpsertRule(ctx, seedRule("inactive", "org-1", "", 0, false)))
	require.NoError(t, st.UpsertRule(ctx, seedRule("other-org", "org-2", "", 0, true)))
	require.NoError(t, st.UpsertRule(ctx, seedRule("other-prop", "org-1", "prop-9", 0, true)))

	ops := seedRule("ops", "org-1", "", 0, true)
	ops.Category = rules.CategoryOperations
	require.NoError(t, st.UpsertRule(ctx, ops))

	defs, err := st.GetActiveRules(ctx, "org-1", "prop-1", rules.CategoryPricing)
	require.NoError(t, err)

	ids := make([]string, 0, len(defs))
	for _, def := range defs {
		ids = append(ids, def.ID)
	}
	assert.Equal(t, []string{"a", "b"}, ids, "ordered by priority, filtered by scope/active/category")
}

func TestMemoryStore_GetActiveRules_PropertyScoped(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	require.NoError(t, st.UpsertRule(ctx, seedRule("scoped", "org-1", "prop-1", 1, true)))

	defs, err := st.GetActiveRules(ctx, "org-1", "prop-1", rules.CategoryPricing)
	require.NoError(t, err)
	assert.Len(t, defs, 1)

	defs, err = st.GetActiveRules(ctx, "org-1", "prop-2", rules.CategoryPricing)
	require.NoError(t, err)
	assert.Empty(t, defs)
}

func TestMemoryStore_ListRules(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	require.NoError(t, st.UpsertRule(ctx, seedRule("r1", "org-1", "", 1, true)))
	require.NoError(t, st.UpsertRule(ctx, seedRule("r2", "org-2", "", 1, false)))

	all, err := st.ListRules(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2, "empty org filter lists every rule, active or not")

	org1, err := st.ListRules(ctx, "org-1")
	require.NoError(t, err)
	require.Len(t, org1, 1)
	assert.Equal(t, "r1", org1[0].ID)
}

func TestMemoryStore_DeterministicOrder(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	// Same priority: id breaks the tie so map iteration order never leaks.
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, st.UpsertRule(ctx, seedRule(id, "org-1", "", 7, true)))
	}

	for i := 0; i < 10; i++ {
		defs, err := st.ListRules(ctx, "org-1")
		require.NoError(t, err)
		require.Len(t, defs, 3)
		assert.Equal(t, "a", defs[0].ID)
		assert.Equal(t, "b", defs[1].ID)
		assert.Equal(t, "c", defs[2].ID)
	}
}
