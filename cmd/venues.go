package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/holidaze/internal/booking"
	"github.com/example/holidaze/internal/catalog"
	"github.com/example/holidaze/internal/holidaze"
)

func newVenuesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "venues",
		Short: "Browse venues",
	}
	cmd.AddCommand(newVenuesListCmd())
	cmd.AddCommand(newVenuesShowCmd())
	return cmd
}

func newVenuesListCmd() *cobra.Command {
	var q holidaze.VenueQuery

	c := &cobra.Command{
		Use:   "list",
		Short: "List venues, optionally filtered by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.close()
			venues, meta, err := e.api.ListVenues(cmd.Context(), q)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, v := range catalog.FilterByName(venues, q.Q) {
				fmt.Fprintf(out, "id=%s name=%q price=%.0f max_guests=%d rating=%.1f\n", v.ID, v.Name, v.Price, v.MaxGuests, v.Rating)
			}
			if meta.PageCount > 0 {
				fmt.Fprintf(out, "# page %d of %d\n", meta.CurrentPage, meta.PageCount)
			}
			return nil
		},
	}
	c.Flags().StringVar(&q.Q, "q", "", "filter by name (case-insensitive)")
	c.Flags().IntVar(&q.Limit, "limit", 20, "venues per page")
	c.Flags().IntVar(&q.Page, "page", 1, "page number")
	c.Flags().StringVar(&q.Sort, "sort", "", "sort field, e.g. created or price")
	c.Flags().StringVar(&q.SortOrder, "sort-order", "", "asc or desc")
	return c
}

func newVenuesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <venue-id>",
		Short: "Show a venue and its blocked dates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.close()
			va, err := booking.NewService(e.log, nil).Load(cmd.Context(), e.api, args[0])
			if err != nil {
				return err
			}
			v := va.Venue
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id=%s name=%q price=%.0f max_guests=%d\n", v.ID, v.Name, v.Price, v.MaxGuests)
			if v.Location != nil && v.Location.City != "" {
				fmt.Fprintf(out, "location=%s, %s\n", v.Location.City, v.Location.Country)
			}
			blocked := va.Blocked.Strings()
			if len(blocked) == 0 {
				fmt.Fprintln(out, "blocked: none")
				return nil
			}
			fmt.Fprintf(out, "blocked: %s\n", strings.Join(blocked, " "))
			return nil
		},
	}
}
