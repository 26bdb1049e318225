package cli

import (
	"errors"
	"fmt"

	"github.com/monocle-dev/tracker/internal/apperr"
	"github.com/monocle-dev/tracker/internal/services"
	"github.com/spf13/cobra"
)

func newMakeAdminCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "make-admin <email>",
		Short: "Promote user to admin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}

			email := args[0]
			users := services.New(services.Options{DB: app.DB}).Users

			if _, err := users.PromoteToAdmin(cmd.Context(), email); err != nil {
				var appErr *apperr.Error
				if errors.As(err, &appErr) {
					return errors.New(appErr.Message)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "User with email %s was promoted to admin\n", email)
			return nil
		},
	}
}
