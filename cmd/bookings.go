package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/example/holidaze/internal/availability"
	"github.com/example/holidaze/internal/booking"
	"github.com/example/holidaze/internal/itinerary"
)

func newBookingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Create, list and cancel your bookings",
	}
	cmd.AddCommand(newBookingsCreateCmd())
	cmd.AddCommand(newBookingsListCmd())
	cmd.AddCommand(newBookingsCancelCmd())
	return cmd
}

func newBookingsCreateCmd() *cobra.Command {
	var venueID, from, to string
	var guests int

	c := &cobra.Command{
		Use:   "create",
		Short: "Validate and submit a booking",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.close()
			api, name, err := e.user()
			if err != nil {
				return err
			}
			stay := availability.Stay{Guests: guests}
			if stay.From, err = availability.ParseDate(from); err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			if stay.To, err = availability.ParseDate(to); err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			recorder, closeDB, err := e.ledger(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer closeDB()

			b, err := booking.NewService(e.log, recorder).Book(cmd.Context(), api, name, venueID, stay)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "booked id=%s %s..%s guests=%d\n", b.ID, stay.From, stay.To, stay.Guests)
			return nil
		},
	}
	c.Flags().StringVar(&venueID, "venue", "", "venue id")
	c.Flags().StringVar(&from, "from", "", "check-in date YYYY-MM-DD")
	c.Flags().StringVar(&to, "to", "", "check-out date YYYY-MM-DD")
	c.Flags().IntVar(&guests, "guests", 1, "number of guests")
	_ = c.MarkFlagRequired("venue")
	_ = c.MarkFlagRequired("from")
	_ = c.MarkFlagRequired("to")
	return c
}

func newBookingsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List upcoming and past stays",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.close()
			api, name, err := e.user()
			if err != nil {
				return err
			}
			bookings, err := api.ProfileBookings(cmd.Context(), name)
			if err != nil {
				return err
			}
			it := itinerary.Build(bookings, availability.Today())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %d upcoming, %d past, %d nights total\n", len(it.Upcoming), len(it.Past), it.TotalNights)
			if it.Next != nil {
				fmt.Fprintf(out, "# next: %s venue=%q nights=%d\n", it.Next.CheckIn(), venueName(*it.Next), it.Next.Nights)
			} else {
				fmt.Fprintln(out, "# next: none")
			}
			printStays(out, "upcoming", it.Upcoming)
			printStays(out, "past", it.Past)
			return nil
		},
	}
}

func printStays(out io.Writer, label string, stays []itinerary.Stay) {
	for _, s := range stays {
		fmt.Fprintf(out, "%s id=%s venue=%q %s..%s nights=%d guests=%d\n",
			label, s.ID, venueName(s), s.DateFrom, s.DateTo, s.Nights, s.Guests)
	}
}

func venueName(s itinerary.Stay) string {
	if s.Venue == nil {
		return ""
	}
	return s.Venue.Name
}

func newBookingsCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <booking-id>",
		Short: "Cancel a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.close()
			api, _, err := e.user()
			if err != nil {
				return err
			}
			if err := api.DeleteBooking(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cancelled %s\n", args[0])
			return nil
		},
	}
}
