package cli

import (
	"context"
	"fmt"

	"dog-match/internal/domain/session"

	"github.com/spf13/cobra"
)

func newBreedsCmd(g *globalFlags) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "breeds",
		Short: "Log in, print the sorted breed list and log out",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			creds, err := session.ValidateCredentials(name, email)
			if err != nil {
				return fmt.Errorf("--name and --email are required: %w", err)
			}

			a, err := loadApp(ctx, cmd, g)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close(context.Background()) }()

			ws, err := a.Workspaces.Open(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Workspaces.Close(context.Background(), ws.ID) }()

			if err := ws.Session.Login(ctx, creds.Name, creds.Email); err != nil {
				return err
			}
			// El logout va siempre, aunque falle el listado.
			defer func() { _ = ws.Session.Logout(context.Background()) }()

			breeds, err := ws.Browse.LoadBreeds(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, b := range breeds {
				if _, err := fmt.Fprintln(out, b); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "your name")
	cmd.Flags().StringVar(&email, "email", "", "your email")
	return cmd
}
