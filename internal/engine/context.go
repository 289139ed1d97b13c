package engine

import "time"

// Context is the immutable snapshot of booking and inventory signals one
// price evaluation runs against. It is built once per call by the context
// builder and discarded afterwards; the engine holds no long-lived state.
//
// CurrentPrice is the running price. Only the calculator advances it between
// rule iterations; rules themselves never write to the context.
type Context struct {
	Date      time.Time `json:"date"`
	DayOfWeek string    `json:"dayOfWeek"`
	IsWeekend bool      `json:"isWeekend"`
	Season    string    `json:"season"`

	OrganizationID string `json:"organizationId"`
	PropertyID     string `json:"propertyId"`
	RoomTypeID     string `json:"roomTypeId"`

	AdvanceBookingDays int    `json:"advanceBookingDays"`
	LengthOfStay       int    `json:"lengthOfStay"`
	GuestType          string `json:"guestType"`
	BookingSource      string `json:"bookingSource"`

	OccupancyRate float64 `json:"occupancyRate"`
	DemandScore   float64 `json:"demandScore"`

	CurrentPrice float64 `json:"currentPrice"`
	BasePrice    float64 `json:"basePrice"`

	// Optional market signals. Nil / empty means the signal is unavailable;
	// conditions on an unavailable signal never match.
	CompetitorPrice *float64 `json:"competitorPrice,omitempty"`
	Weather         *string  `json:"weather,omitempty"`
	LocalEvents     []string `json:"localEvents,omitempty"`
}

// withPrice returns a copy of the context whose running price is price.
// Used by the calculator to thread the price forward across rules without
// mutating the caller's snapshot.
func (c *Context) withPrice(price float64) *Context {
	next := *c
	next.CurrentPrice = price
	return &next
}
