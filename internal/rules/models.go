package rules

import "time"

// Category groups rules by the subsystem that consumes them. The pricing
// engine only ever evaluates CategoryPricing rules; other categories are
// reserved for future subsystems (housekeeping automation, messaging).
type Category string

const (
	CategoryPricing    Category = "PRICING"
	CategoryOperations Category = "OPERATIONS"
	CategoryMessaging  Category = "MESSAGING"
)

// ConditionType identifies which field of the execution context a condition
// is compared against. The set is closed: the engine maps every type to
// exactly one context accessor, and the validator rejects anything else.
type ConditionType string

const (
	ConditionOccupancy       ConditionType = "occupancy"
	ConditionAdvanceBooking  ConditionType = "advance_booking"
	ConditionDayOfWeek       ConditionType = "day_of_week"
	ConditionSeason          ConditionType = "season"
	ConditionDemand          ConditionType = "demand"
	ConditionCompetitorPrice ConditionType = "competitor_price"
	ConditionWeather         ConditionType = "weather"
	ConditionEvent           ConditionType = "event"
	ConditionRoomType        ConditionType = "room_type"
	ConditionBookingSource   ConditionType = "booking_source"
	ConditionGuestType       ConditionType = "guest_type"
	ConditionLengthOfStay    ConditionType = "length_of_stay"
)

// Operator represents a comparison operator used in rule conditions.
type Operator string

const (
	OpEquals         Operator = "equals"
	OpNotEquals      Operator = "not_equals"
	OpGreaterThan    Operator = "greater_than"
	OpLessThan       Operator = "less_than"
	OpGreaterOrEqual Operator = "greater_or_equal"
	OpLessOrEqual    Operator = "less_or_equal"
	OpBetween        Operator = "between"
	OpNotBetween     Operator = "not_between"
	OpIn             Operator = "in"
	OpNotIn          Operator = "not_in"
	OpContains       Operator = "contains"
	OpNotContains    Operator = "not_contains"
	OpStartsWith     Operator = "starts_with"
	OpEndsWith       Operator = "ends_with"
)

// ActionType identifies the effect an action has on the running price.
// Non-pricing types are reserved extension points: the pricing engine treats
// them as documented no-ops and leaves the price untouched.
type ActionType string

const (
	ActionMultiplyPrice   ActionType = "multiply_price"
	ActionAddAmount       ActionType = "add_amount"
	ActionSubtractAmount  ActionType = "subtract_amount"
	ActionSetPrice        ActionType = "set_price"
	ActionSetMinimumPrice ActionType = "set_minimum_price"
	ActionSetMaximumPrice ActionType = "set_maximum_price"

	// Reserved non-pricing action types.
	ActionSendNotification ActionType = "send_notification"
	ActionAdjustInventory  ActionType = "adjust_inventory"
	ActionRequireApproval  ActionType = "require_approval"
)

// IsPricing reports whether the action type mutates the running price.
func (t ActionType) IsPricing() bool {
	switch t {
	case ActionMultiplyPrice, ActionAddAmount, ActionSubtractAmount,
		ActionSetPrice, ActionSetMinimumPrice, ActionSetMaximumPrice:
		return true
	}
	return false
}

// Condition represents a single typed predicate against one context field.
// When multiple conditions belong to one rule, they are evaluated with AND
// semantics: all conditions must match for the rule to apply.
type Condition struct {
	Type     ConditionType `json:"type"`
	Operator Operator      `json:"operator"`
	Value    any           `json:"value"`
}

// Action represents one price transformation. Value is numeric for pricing
// actions; it is kept as `any` so that a malformed stored value surfaces as a
// per-action failure at evaluation time instead of a decode error.
type Action struct {
	Type  ActionType `json:"type"`
	Value any        `json:"value"`
}

// Scope restricts a rule to an organization and, optionally, to a single
// property. An empty PropertyID means the rule applies to every property of
// the organization.
type Scope struct {
	OrganizationID string `json:"organizationId"`
	PropertyID     string `json:"propertyId,omitempty"`
}

// AppliesTo reports whether the scope admits the given organization and
// property. Organization must match exactly; a rule-level property, when set,
// must match exactly as well.
func (s Scope) AppliesTo(organizationID, propertyID string) bool {
	if s.OrganizationID != organizationID {
		return false
	}
	if s.PropertyID != "" && s.PropertyID != propertyID {
		return false
	}
	return true
}

// Definition is a stored pricing rule. Definitions are immutable once loaded
// into an evaluation run; the engine never mutates or persists them.
type Definition struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Category   Category    `json:"category"`
	Priority   int         `json:"priority"` // lower executes earlier
	Scope      Scope       `json:"scope"`
	Conditions []Condition `json:"conditions"`
	Actions    []Action    `json:"actions"`
	Active     bool        `json:"active"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}
