package booking

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuild_DerivedCalendarFields(t *testing.T) {
	builder := NewBuilder(0)

	stay := Stay{
		OrganizationID: "org-1",
		PropertyID:     "prop-1",
		CheckIn:        date(2026, time.July, 18), // Saturday
		CheckOut:       date(2026, time.July, 21),
		BookedAt:       date(2026, time.July, 4),
	}

	ctx := builder.Build(stay, Signals{})

	if ctx.DayOfWeek != "saturday" {
		t.Errorf("DayOfWeek = %q, want saturday", ctx.DayOfWeek)
	}
	if !ctx.IsWeekend {
		t.Error("Saturday check-in should be weekend")
	}
	if ctx.Season != "summer" {
		t.Errorf("Season = %q, want summer", ctx.Season)
	}
	if ctx.AdvanceBookingDays != 14 {
		t.Errorf("AdvanceBookingDays = %d, want 14", ctx.AdvanceBookingDays)
	}
	if ctx.LengthOfStay != 3 {
		t.Errorf("LengthOfStay = %d, want 3", ctx.LengthOfStay)
	}
}

func TestBuild_SentinelDefaults(t *testing.T) {
	builder := NewBuilder(0)
	ctx := builder.Build(Stay{CheckIn: date(2026, time.March, 2)}, Signals{})

	if ctx.OccupancyRate != DefaultOccupancyRate {
		t.Errorf("OccupancyRate = %v, want %v", ctx.OccupancyRate, DefaultOccupancyRate)
	}
	if ctx.DemandScore != DefaultDemandScore {
		t.Errorf("DemandScore = %v, want %v", ctx.DemandScore, DefaultDemandScore)
	}
	if ctx.CurrentPrice != DefaultBasePrice || ctx.BasePrice != DefaultBasePrice {
		t.Errorf("prices = %v/%v, want %v", ctx.CurrentPrice, ctx.BasePrice, DefaultBasePrice)
	}
	if ctx.CompetitorPrice != nil || ctx.Weather != nil || len(ctx.LocalEvents) != 0 {
		t.Error("absent optional signals must stay nil")
	}
}

func TestBuild_SignalsOverrideDefaults(t *testing.T) {
	occupancy := 92.5
	demand := 88.0
	base := 150.0
	competitor := 140.0
	weather := "sunny"

	builder := NewBuilder(100)
	ctx := builder.Build(Stay{CheckIn: date(2026, time.March, 2)}, Signals{
		OccupancyRate:   &occupancy,
		DemandScore:     &demand,
		BasePrice:       &base,
		CompetitorPrice: &competitor,
		Weather:         &weather,
		LocalEvents:     []string{"expo"},
	})

	if ctx.OccupancyRate != 92.5 || ctx.DemandScore != 88.0 {
		t.Errorf("signals not applied: %v / %v", ctx.OccupancyRate, ctx.DemandScore)
	}
	if ctx.CurrentPrice != 150 || ctx.BasePrice != 150 {
		t.Errorf("base price = %v/%v, want 150", ctx.CurrentPrice, ctx.BasePrice)
	}
	if ctx.CompetitorPrice == nil || *ctx.CompetitorPrice != 140 {
		t.Error("competitor price not carried")
	}
	if ctx.Weather == nil || *ctx.Weather != "sunny" {
		t.Error("weather not carried")
	}
	if len(ctx.LocalEvents) != 1 || ctx.LocalEvents[0] != "expo" {
		t.Error("events not carried")
	}
}

func TestBuild_ConfiguredDefaultBasePrice(t *testing.T) {
	builder := NewBuilder(75)
	ctx := builder.Build(Stay{CheckIn: date(2026, time.March, 2)}, Signals{})
	if ctx.BasePrice != 75 {
		t.Errorf("BasePrice = %v, want configured 75", ctx.BasePrice)
	}
}

func TestSeasonOf(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.January, "winter"},
		{time.February, "winter"},
		{time.March, "spring"},
		{time.May, "spring"},
		{time.June, "summer"},
		{time.August, "summer"},
		{time.September, "autumn"},
		{time.November, "autumn"},
		{time.December, "winter"},
	}

	for _, tt := range tests {
		if got := seasonOf(date(2026, tt.month, 10)); got != tt.want {
			t.Errorf("seasonOf(%s) = %q, want %q", tt.month, got, tt.want)
		}
	}
}

func TestNights(t *testing.T) {
	checkIn := date(2026, time.July, 18)
	tests := []struct {
		name     string
		checkOut time.Time
		want     int
	}{
		{"three nights", date(2026, time.July, 21), 3},
		{"same day counts as one", checkIn, 1},
		{"checkout before checkin", date(2026, time.July, 10), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nights(checkIn, tt.checkOut); got != tt.want {
				t.Errorf("nights = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAdvanceDays(t *testing.T) {
	checkIn := date(2026, time.July, 18)

	if got := advanceDays(date(2026, time.July, 4), checkIn); got != 14 {
		t.Errorf("advanceDays = %d, want 14", got)
	}
	if got := advanceDays(time.Time{}, checkIn); got != 0 {
		t.Errorf("zero bookedAt: advanceDays = %d, want 0", got)
	}
	if got := advanceDays(date(2026, time.July, 20), checkIn); got != 0 {
		t.Errorf("bookedAt after checkIn: advanceDays = %d, want 0", got)
	}
}
