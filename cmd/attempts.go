package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAttemptsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attempts",
		Short: "Inspect the booking attempt ledger",
	}
	cmd.AddCommand(newAttemptsListCmd())
	return cmd
}

func newAttemptsListCmd() *cobra.Command {
	var profile string
	var limit int

	c := &cobra.Command{
		Use:   "list",
		Short: "List recent booking attempts for a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.close()
			if e.cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is not set; no ledger to read")
			}
			if profile == "" {
				if _, profile, err = e.user(); err != nil {
					return err
				}
			}
			recorder, closeDB, err := e.ledger(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer closeDB()

			list, err := recorder.ListByProfile(cmd.Context(), profile, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, a := range list {
				line := fmt.Sprintf("%s %s venue=%s %s..%s guests=%d outcome=%s",
					a.CreatedAt.Format("2006-01-02T15:04:05Z07:00"), a.ID, a.VenueID, a.DateFrom, a.DateTo, a.Guests, a.Outcome)
				if a.BookingID != nil {
					line += " booking=" + *a.BookingID
				}
				if a.Message != nil {
					line += fmt.Sprintf(" message=%q", *a.Message)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	c.Flags().StringVar(&profile, "profile", "", "profile name (defaults to the HOLIDAZE_TOKEN owner)")
	c.Flags().IntVar(&limit, "limit", 20, "maximum rows")
	return c
}
