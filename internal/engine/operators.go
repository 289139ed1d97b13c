package engine

import (
	"encoding/json"
	"strings"

	"github.com/stayware/priceflow/internal/rules"
)

// OperatorHandler evaluates one condition operator against a resolved
// context value. Handlers are fail-closed: any value they cannot interpret
// evaluates to no-match, never to an error.
type OperatorHandler interface {
	Check(contextValue, ruleValue any) bool
}

var operatorHandlers = map[rules.Operator]OperatorHandler{
	rules.OpEquals:         equalsHandler{},
	rules.OpNotEquals:      notEqualsHandler{},
	rules.OpGreaterThan:    numericCompareHandler{cmp: func(a, b float64) bool { return a > b }},
	rules.OpLessThan:       numericCompareHandler{cmp: func(a, b float64) bool { return a < b }},
	rules.OpGreaterOrEqual: numericCompareHandler{cmp: func(a, b float64) bool { return a >= b }},
	rules.OpLessOrEqual:    numericCompareHandler{cmp: func(a, b float64) bool { return a <= b }},
	rules.OpBetween:        betweenHandler{},
	rules.OpNotBetween:     notBetweenHandler{},
	rules.OpIn:             inHandler{},
	rules.OpNotIn:          notInHandler{},
	rules.OpContains:       containsHandler{},
	rules.OpNotContains:    notContainsHandler{},
	rules.OpStartsWith:     stringMatchHandler{match: strings.HasPrefix},
	rules.OpEndsWith:       stringMatchHandler{match: strings.HasSuffix},
}

func getOperatorHandler(op rules.Operator) (OperatorHandler, bool) {
	h, ok := operatorHandlers[op]
	return h, ok
}

type equalsHandler struct{}

func (equalsHandler) Check(contextValue, ruleValue any) bool {
	// Numeric comparison first so that int context values match float rule
	// values and vice versa.
	if ctx, ok := toFloat64(contextValue); ok {
		rule, ok := toFloat64(ruleValue)
		return ok && ctx == rule
	}
	if ctx, ok := contextValue.(string); ok {
		rule, ok := ruleValue.(string)
		return ok && ctx == rule
	}
	if ctx, ok := contextValue.(bool); ok {
		rule, ok := ruleValue.(bool)
		return ok && ctx == rule
	}
	return false
}

type notEqualsHandler struct{}

func (notEqualsHandler) Check(contextValue, ruleValue any) bool {
	return !equalsHandler{}.Check(contextValue, ruleValue)
}

type numericCompareHandler struct {
	cmp func(a, b float64) bool
}

func (h numericCompareHandler) Check(contextValue, ruleValue any) bool {
	ctx, ok := toFloat64(contextValue)
	if !ok {
		return false
	}
	rule, ok := toFloat64(ruleValue)
	if !ok {
		return false
	}
	return h.cmp(ctx, rule)
}

type betweenHandler struct{}

func (betweenHandler) Check(contextValue, ruleValue any) bool {
	ctx, ok := toFloat64(contextValue)
	if !ok {
		return false
	}
	min, max := rangeBound(ruleValue)
	return ctx >= min && ctx <= max
}

type notBetweenHandler struct{}

func (notBetweenHandler) Check(contextValue, ruleValue any) bool {
	ctx, ok := toFloat64(contextValue)
	if !ok {
		return false
	}
	min, max := rangeBound(ruleValue)
	return ctx < min || ctx > max
}

type inHandler struct{}

func (inHandler) Check(contextValue, ruleValue any) bool {
	list, ok := toAnySlice(ruleValue)
	if !ok {
		// A non-list rule value never matches.
		return false
	}
	for _, item := range list {
		if (equalsHandler{}).Check(contextValue, item) {
			return true
		}
	}
	return false
}

type notInHandler struct{}

func (notInHandler) Check(contextValue, ruleValue any) bool {
	// not_in is only satisfied by an actual list that excludes the value; a
	// malformed rule value fails closed just like it does for in.
	list, ok := toAnySlice(ruleValue)
	if !ok {
		return false
	}
	for _, item := range list {
		if (equalsHandler{}).Check(contextValue, item) {
			return false
		}
	}
	return true
}

type containsHandler struct{}

func (containsHandler) Check(contextValue, ruleValue any) bool {
	rule, ok := ruleValue.(string)
	if !ok {
		return false
	}
	switch ctx := contextValue.(type) {
	case string:
		return strings.Contains(strings.ToLower(ctx), strings.ToLower(rule))
	case []string:
		// Slice context values (local events) match on membership.
		for _, item := range ctx {
			if strings.EqualFold(item, rule) {
				return true
			}
		}
	}
	return false
}

type notContainsHandler struct{}

func (notContainsHandler) Check(contextValue, ruleValue any) bool {
	return !containsHandler{}.Check(contextValue, ruleValue)
}

type stringMatchHandler struct {
	match func(s, affix string) bool
}

func (h stringMatchHandler) Check(contextValue, ruleValue any) bool {
	ctx, ok := contextValue.(string)
	if !ok {
		return false
	}
	rule, ok := ruleValue.(string)
	if !ok {
		return false
	}
	return h.match(strings.ToLower(ctx), strings.ToLower(rule))
}

// rangeBound extracts [min, max] from a between/not_between rule value. It
// accepts a two-element list or an object with min/max keys; anything else
// degrades to [0, 0] rather than failing the rule.
func rangeBound(v any) (float64, float64) {
	switch val := v.(type) {
	case []any:
		if len(val) == 2 {
			if min, ok := toFloat64(val[0]); ok {
				if max, ok := toFloat64(val[1]); ok {
					return min, max
				}
			}
		}
	case []float64:
		if len(val) == 2 {
			return val[0], val[1]
		}
	case []int:
		if len(val) == 2 {
			return float64(val[0]), float64(val[1])
		}
	case map[string]any:
		if min, ok := toFloat64(val["min"]); ok {
			if max, ok := toFloat64(val["max"]); ok {
				return min, max
			}
		}
	}
	return 0, 0
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func toAnySlice(v any) ([]any, bool) {
	switch values := v.(type) {
	case []any:
		return values, true
	case []string:
		result := make([]any, len(values))
		for i, s := range values {
			result[i] = s
		}
		return result, true
	case []int:
		result := make([]any, len(values))
		for i, n := range values {
			result[i] = n
		}
		return result, true
	case []float64:
		result := make([]any, len(values))
		for i, f := range values {
			result[i] = f
		}
		return result, true
	default:
		return nil, false
	}
}
