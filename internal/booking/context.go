// Package booking builds pricing execution contexts from reservation
// parameters and market signals. It owns the sentinel defaults that keep the
// engine from ever seeing an undefined numeric field.
package booking

import (
	"strings"
	"time"

	"github.com/stayware/priceflow/internal/engine"
)

// Sentinels substituted when an upstream signal is unavailable.
const (
	DefaultOccupancyRate = 50.0
	DefaultDemandScore   = 50.0
	DefaultBasePrice     = 100.0
)

// Stay describes the reservation being priced.
type Stay struct {
	OrganizationID string    `json:"organizationId"`
	PropertyID     string    `json:"propertyId"`
	RoomTypeID     string    `json:"roomTypeId"`
	CheckIn        time.Time `json:"checkIn"`
	CheckOut       time.Time `json:"checkOut"`
	BookedAt       time.Time `json:"bookedAt"`
	GuestType      string    `json:"guestType"`
	BookingSource  string    `json:"bookingSource"`
}

// Signals carries the optional market inputs derived upstream from inventory
// and rate data. Nil fields mean the signal is unavailable.
type Signals struct {
	OccupancyRate   *float64 `json:"occupancyRate,omitempty"`
	DemandScore     *float64 `json:"demandScore,omitempty"`
	BasePrice       *float64 `json:"basePrice,omitempty"`
	CompetitorPrice *float64 `json:"competitorPrice,omitempty"`
	Weather         *string  `json:"weather,omitempty"`
	LocalEvents     []string `json:"localEvents,omitempty"`
}

// Builder assembles engine contexts. The zero value uses the package
// sentinels; a custom default base price can be injected from config.
type Builder struct {
	defaultBasePrice float64
}

func NewBuilder(defaultBasePrice float64) *Builder {
	if defaultBasePrice <= 0 {
		defaultBasePrice = DefaultBasePrice
	}
	return &Builder{defaultBasePrice: defaultBasePrice}
}

// Build produces the immutable context for one evaluation. Calendar fields
// (day of week, weekend, season, advance days, length of stay) are derived
// from the stay dates; missing signals take their documented defaults so the
// engine's numeric accessors are always defined.
func (b *Builder) Build(stay Stay, signals Signals) *engine.Context {
	occupancy := DefaultOccupancyRate
	if signals.OccupancyRate != nil {
		occupancy = *signals.OccupancyRate
	}
	demand := DefaultDemandScore
	if signals.DemandScore != nil {
		demand = *signals.DemandScore
	}
	basePrice := b.defaultBasePrice
	if signals.BasePrice != nil {
		basePrice = *signals.BasePrice
	}

	checkIn := stay.CheckIn
	weekday := checkIn.Weekday()

	return &engine.Context{
		Date:      checkIn,
		DayOfWeek: strings.ToLower(weekday.String()),
		IsWeekend: weekday == time.Saturday || weekday == time.Sunday,
		Season:    seasonOf(checkIn),

		OrganizationID: stay.OrganizationID,
		PropertyID:     stay.PropertyID,
		RoomTypeID:     stay.RoomTypeID,

		AdvanceBookingDays: advanceDays(stay.BookedAt, checkIn),
		LengthOfStay:       nights(checkIn, stay.CheckOut),
		GuestType:          stay.GuestType,
		BookingSource:      stay.BookingSource,

		OccupancyRate: occupancy,
		DemandScore:   demand,

		CurrentPrice: basePrice,
		BasePrice:    basePrice,

		CompetitorPrice: signals.CompetitorPrice,
		Weather:         signals.Weather,
		LocalEvents:     signals.LocalEvents,
	}
}

// seasonOf maps a date to a northern-hemisphere meteorological season.
func seasonOf(date time.Time) string {
	switch date.Month() {
	case time.December, time.January, time.February:
		return "winter"
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	default:
		return "autumn"
	}
}

func advanceDays(bookedAt, checkIn time.Time) int {
	if bookedAt.IsZero() || bookedAt.After(checkIn) {
		return 0
	}
	return int(checkIn.Sub(bookedAt).Hours() / 24)
}

func nights(checkIn, checkOut time.Time) int {
	if checkOut.Before(checkIn) {
		return 0
	}
	n := int(checkOut.Sub(checkIn).Hours() / 24)
	if n < 1 {
		n = 1
	}
	return n
}
