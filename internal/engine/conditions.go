package engine

import "github.com/stayware/priceflow/internal/rules"

// matchesAllConditions applies AND semantics over a rule's conditions: every
// condition must hold. There is deliberately no OR combinator. An empty
// condition list always matches.
func matchesAllConditions(ctx *Context, conditions []rules.Condition) bool {
	for _, condition := range conditions {
		value, ok := contextValue(ctx, condition.Type)
		if !ok {
			// Unavailable signal: fail closed, never error.
			return false
		}
		handler, ok := getOperatorHandler(condition.Operator)
		if !ok || !handler.Check(value, condition.Value) {
			return false
		}
	}
	return true
}

// contextValue is the total mapping from condition type to context field.
// Every member of the closed ConditionType set has exactly one accessor
// here; optional signals report ok=false when absent so conditions on them
// evaluate to no-match.
func contextValue(ctx *Context, t rules.ConditionType) (any, bool) {
	switch t {
	case rules.ConditionOccupancy:
		return ctx.OccupancyRate, true
	case rules.ConditionAdvanceBooking:
		return ctx.AdvanceBookingDays, true
	case rules.ConditionDayOfWeek:
		return ctx.DayOfWeek, true
	case rules.ConditionSeason:
		return ctx.Season, true
	case rules.ConditionDemand:
		return ctx.DemandScore, true
	case rules.ConditionCompetitorPrice:
		if ctx.CompetitorPrice == nil {
			return nil, false
		}
		return *ctx.CompetitorPrice, true
	case rules.ConditionWeather:
		if ctx.Weather == nil {
			return nil, false
		}
		return *ctx.Weather, true
	case rules.ConditionEvent:
		if len(ctx.LocalEvents) == 0 {
			return nil, false
		}
		return ctx.LocalEvents, true
	case rules.ConditionRoomType:
		return ctx.RoomTypeID, true
	case rules.ConditionBookingSource:
		return ctx.BookingSource, true
	case rules.ConditionGuestType:
		return ctx.GuestType, true
	case rules.ConditionLengthOfStay:
		return ctx.LengthOfStay, true
	default:
		// Unknown types are rejected by the validator at the write path;
		// anything that still reaches here fails closed.
		return nil, false
	}
}
