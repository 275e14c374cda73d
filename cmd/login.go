package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/holidaze/internal/holidaze"
)

func newLoginCmd() *cobra.Command {
	var email, password string

	c := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a HOLIDAZE_TOKEN export line",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.close()
			sess, err := e.api.Login(cmd.Context(), holidaze.LoginInput{Email: email, Password: password})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			role := "guest"
			if sess.VenueManager {
				role = "venue manager"
			}
			fmt.Fprintf(out, "# logged in as %s (%s)\n", sess.Name, role)
			fmt.Fprintf(out, "export HOLIDAZE_TOKEN=%s\n", sess.AccessToken)
			return nil
		},
	}
	c.Flags().StringVar(&email, "email", "", "account email")
	c.Flags().StringVar(&password, "password", "", "account password")
	_ = c.MarkFlagRequired("email")
	_ = c.MarkFlagRequired("password")
	return c
}
