package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stayware/priceflow/internal/booking"
	"github.com/stayware/priceflow/internal/cli"
	"github.com/stayware/priceflow/internal/client"
	"github.com/stayware/priceflow/internal/pricing"
)

var (
	quoteOrg             string
	quoteProperty        string
	quoteRoomType        string
	quoteCheckIn         string
	quoteCheckOut        string
	quoteBookedAt        string
	quoteGuestType       string
	quoteSource          string
	quoteBasePrice       float64
	quoteOccupancy       float64
	quoteDemand          float64
	quoteCompetitorPrice float64
	quoteWeather         string
	quoteEvents          []string
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Request a price quote",
	Long: `Request a price quote for a stay. Dates use YYYY-MM-DD.

Signal flags left at their zero value are omitted from the request, so the
server falls back to its documented defaults.

Examples:
  priceflow quote --org org-1 --check-in 2026-07-14 --check-out 2026-07-17
  priceflow quote --org org-1 --property prop-9 --check-in 2026-07-14 \
    --base-price 120 --occupancy 85 --event "jazz festival"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if quoteOrg == "" {
			return fmt.Errorf("--org is required")
		}
		if quoteCheckIn == "" {
			return fmt.Errorf("--check-in is required")
		}

		checkIn, err := time.Parse("2006-01-02", quoteCheckIn)
		if err != nil {
			return fmt.Errorf("invalid --check-in date: %w", err)
		}

		checkOut := checkIn.AddDate(0, 0, 1)
		if quoteCheckOut != "" {
			checkOut, err = time.Parse("2006-01-02", quoteCheckOut)
			if err != nil {
				return fmt.Errorf("invalid --check-out date: %w", err)
			}
		}

		bookedAt := time.Now().UTC()
		if quoteBookedAt != "" {
			bookedAt, err = time.Parse("2006-01-02", quoteBookedAt)
			if err != nil {
				return fmt.Errorf("invalid --booked-at date: %w", err)
			}
		}

		req := pricing.QuoteRequest{
			Stay: booking.Stay{
				OrganizationID: quoteOrg,
				PropertyID:     quoteProperty,
				RoomTypeID:     quoteRoomType,
				CheckIn:        checkIn,
				CheckOut:       checkOut,
				BookedAt:       bookedAt,
				GuestType:      quoteGuestType,
				BookingSource:  quoteSource,
			},
			Signals: booking.Signals{
				LocalEvents: quoteEvents,
			},
		}

		if cmd.Flags().Changed("base-price") {
			req.Signals.BasePrice = &quoteBasePrice
		}
		if cmd.Flags().Changed("occupancy") {
			req.Signals.OccupancyRate = &quoteOccupancy
		}
		if cmd.Flags().Changed("demand") {
			req.Signals.DemandScore = &quoteDemand
		}
		if cmd.Flags().Changed("competitor-price") {
			req.Signals.CompetitorPrice = &quoteCompetitorPrice
		}
		if quoteWeather != "" {
			req.Signals.Weather = &quoteWeather
		}

		profileCfg, _, err := cli.GetProfileConfig(profile, baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(profileCfg.BaseURL, profileCfg.APIKey)

		ctx := context.Background()
		result, err := c.Quote(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to get quote: %w", err)
		}

		if !quiet {
			return cli.PrintQuote(result, cli.OutputFormat(format))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().StringVar(&quoteOrg, "org", "", "Organization id (required)")
	quoteCmd.Flags().StringVar(&quoteProperty, "property", "", "Property id")
	quoteCmd.Flags().StringVar(&quoteRoomType, "room-type", "", "Room type id")
	quoteCmd.Flags().StringVar(&quoteCheckIn, "check-in", "", "Check-in date, YYYY-MM-DD (required)")
	quoteCmd.Flags().StringVar(&quoteCheckOut, "check-out", "", "Check-out date, YYYY-MM-DD (default: check-in + 1 night)")
	quoteCmd.Flags().StringVar(&quoteBookedAt, "booked-at", "", "Booking date, YYYY-MM-DD (default: today)")
	quoteCmd.Flags().StringVar(&quoteGuestType, "guest-type", "", "Guest type (e.g. loyalty_member, corporate)")
	quoteCmd.Flags().StringVar(&quoteSource, "source", "", "Booking source (e.g. direct, ota)")
	quoteCmd.Flags().Float64Var(&quoteBasePrice, "base-price", 0, "Base room price")
	quoteCmd.Flags().Float64Var(&quoteOccupancy, "occupancy", 0, "Occupancy rate, 0-100")
	quoteCmd.Flags().Float64Var(&quoteDemand, "demand", 0, "Demand score, 0-100")
	quoteCmd.Flags().Float64Var(&quoteCompetitorPrice, "competitor-price", 0, "Competitor price")
	quoteCmd.Flags().StringVar(&quoteWeather, "weather", "", "Weather condition (e.g. sunny, rainy)")
	quoteCmd.Flags().StringSliceVar(&quoteEvents, "event", nil, "Local event (repeatable)")
}
