package engine

import (
	"sort"

	"github.com/stayware/priceflow/internal/rules"
)

// orderActive retains only active rules and sorts them ascending by
// priority. The sort is stable: ties preserve the stored order, so the same
// rule set always evaluates in the same sequence. Reproducible ordering is
// what makes pricing traces replayable for billing audits.
func orderActive(defs []rules.Definition) []rules.Definition {
	ordered := make([]rules.Definition, 0, len(defs))
	for _, def := range defs {
		if def.Active {
			ordered = append(ordered, def)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})
	return ordered
}

// applicableRules narrows an ordered rule list to pricing rules whose scope
// admits the context. A rule scoped to another organization or property is
// never evaluated, regardless of its conditions.
func applicableRules(ordered []rules.Definition, ctx *Context) []rules.Definition {
	applicable := make([]rules.Definition, 0, len(ordered))
	for _, def := range ordered {
		if def.Category != rules.CategoryPricing {
			continue
		}
		if !def.Scope.AppliesTo(ctx.OrganizationID, ctx.PropertyID) {
			continue
		}
		applicable = append(applicable, def)
	}
	return applicable
}
