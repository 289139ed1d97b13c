package rules

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by ValidateDefinition.
var (
	ErrInvalidDefinition    = errors.New("invalid rule definition")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrInvalidConditionType = errors.New("invalid condition type")
	ErrInvalidOperator      = errors.New("invalid operator")
	ErrInvalidValueType     = errors.New("invalid value type")
	ErrInvalidActionType    = errors.New("invalid action type")
)

var validCategories = map[Category]struct{}{
	CategoryPricing:    {},
	CategoryOperations: {},
	CategoryMessaging:  {},
}

var validConditionTypes = map[ConditionType]struct{}{
	ConditionOccupancy:       {},
	ConditionAdvanceBooking:  {},
	ConditionDayOfWeek:       {},
	ConditionSeason:          {},
	ConditionDemand:          {},
	ConditionCompetitorPrice: {},
	ConditionWeather:         {},
	ConditionEvent:           {},
	ConditionRoomType:        {},
	ConditionBookingSource:   {},
	ConditionGuestType:       {},
	ConditionLengthOfStay:    {},
}

var validOperators = map[Operator]struct{}{
	OpEquals:         {},
	OpNotEquals:      {},
	OpGreaterThan:    {},
	OpLessThan:       {},
	OpGreaterOrEqual: {},
	OpLessOrEqual:    {},
	OpBetween:        {},
	OpNotBetween:     {},
	OpIn:             {},
	OpNotIn:          {},
	OpContains:       {},
	OpNotContains:    {},
	OpStartsWith:     {},
	OpEndsWith:       {},
}

var validActionTypes = map[ActionType]struct{}{
	ActionMultiplyPrice:    {},
	ActionAddAmount:        {},
	ActionSubtractAmount:   {},
	ActionSetPrice:         {},
	ActionSetMinimumPrice:  {},
	ActionSetMaximumPrice:  {},
	ActionSendNotification: {},
	ActionAdjustInventory:  {},
	ActionRequireApproval:  {},
}

// ValidateDefinition performs strict validation of a rule definition at the
// write path. The evaluation path is fail-closed by contract and never
// rejects; this is the one place malformed rules are turned away. It is a
// pure function: it never mutates def and has no side effects.
func ValidateDefinition(def Definition) error {
	if def.ID == "" {
		return fmt.Errorf("%w: id must not be empty", ErrInvalidDefinition)
	}
	if def.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidDefinition)
	}
	if _, ok := validCategories[def.Category]; !ok {
		return fmt.Errorf("%w: %q is not a known category", ErrInvalidCategory, def.Category)
	}
	if def.Scope.OrganizationID == "" {
		return fmt.Errorf("%w: scope.organizationId must not be empty", ErrInvalidDefinition)
	}

	for i, c := range def.Conditions {
		if err := validateCondition(i, c); err != nil {
			return err
		}
	}

	for i, a := range def.Actions {
		if err := validateAction(i, a); err != nil {
			return err
		}
	}

	return nil
}

func validateCondition(i int, c Condition) error {
	if _, ok := validConditionTypes[c.Type]; !ok {
		return fmt.Errorf("%w: condition[%d] type %q is not supported", ErrInvalidConditionType, i, c.Type)
	}
	if _, ok := validOperators[c.Operator]; !ok {
		return fmt.Errorf("%w: condition[%d] operator %q is not supported", ErrInvalidOperator, i, c.Operator)
	}
	return validateConditionValue(i, c.Operator, c.Value)
}

// validateConditionValue checks that the condition value has a shape
// compatible with the operator. Explicit type assertions only.
func validateConditionValue(i int, op Operator, v any) error {
	switch op {
	case OpGreaterThan, OpLessThan, OpGreaterOrEqual, OpLessOrEqual:
		if !isNumeric(v) {
			return fmt.Errorf("%w: condition[%d] operator %q requires a numeric value", ErrInvalidValueType, i, op)
		}

	case OpBetween, OpNotBetween:
		if !isRange(v) {
			return fmt.Errorf("%w: condition[%d] operator %q requires a [min, max] pair or {min, max} object", ErrInvalidValueType, i, op)
		}

	case OpIn, OpNotIn:
		if !isSlice(v) {
			return fmt.Errorf("%w: condition[%d] operator %q requires a list value", ErrInvalidValueType, i, op)
		}

	case OpContains, OpNotContains, OpStartsWith, OpEndsWith:
		if _, ok := v.(string); !ok {
			return fmt.Errorf("%w: condition[%d] operator %q requires a string value", ErrInvalidValueType, i, op)
		}

	case OpEquals, OpNotEquals:
		if !isScalar(v) {
			return fmt.Errorf("%w: condition[%d] operator %q requires a scalar value", ErrInvalidValueType, i, op)
		}
	}

	return nil
}

func validateAction(i int, a Action) error {
	if _, ok := validActionTypes[a.Type]; !ok {
		return fmt.Errorf("%w: action[%d] type %q is not supported", ErrInvalidActionType, i, a.Type)
	}
	if a.Type.IsPricing() && !isNumeric(a.Value) {
		return fmt.Errorf("%w: action[%d] type %q requires a numeric value", ErrInvalidValueType, i, a.Type)
	}
	return nil
}

// isRange accepts the two encodings the engine understands: a two-element
// list, or an object carrying min and max keys.
func isRange(v any) bool {
	switch val := v.(type) {
	case []any:
		return len(val) == 2 && isNumeric(val[0]) && isNumeric(val[1])
	case []float64:
		return len(val) == 2
	case []int:
		return len(val) == 2
	case map[string]any:
		_, hasMin := val["min"]
		_, hasMax := val["max"]
		return hasMin && hasMax && isNumeric(val["min"]) && isNumeric(val["max"])
	}
	return false
}

// isSlice returns true for slice types that may appear after JSON
// unmarshaling or be provided programmatically.
func isSlice(v any) bool {
	switch v.(type) {
	case []any, []string, []int, []float64:
		return true
	}
	return false
}

func isNumeric(v any) bool {
	switch v.(type) {
	case int, int32, int64, float32, float64:
		return true
	}
	return false
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, bool, int, int32, int64, float32, float64:
		return true
	}
	return false
}
