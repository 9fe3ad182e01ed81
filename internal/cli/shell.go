package cli

import (
	"context"
	"errors"
	"strings"

	"dog-match/internal/domain/session"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newShellCmd(g *globalFlags) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive browser: search, filter, favorite and match",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
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

			prompt := loginForm
			// Con flags no se abre el formulario.
			if cmd.Flags().Changed("name") || cmd.Flags().Changed("email") {
				prompt = func() (string, string, error) { return name, email, nil }
			}

			sh := NewShell(ws, cmd.InOrStdin(), cmd.OutOrStdout(), prompt)
			return sh.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "your name (skips the login form)")
	cmd.Flags().StringVar(&email, "email", "", "your email (skips the login form)")
	return cmd
}

// loginForm pide nombre y email con huh.
func loginForm() (string, string, error) {
	var name, email string

	required := func(field string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New(field + " is required")
			}
			return nil
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to Dog Match").
				Description("Log in to browse adoptable dogs."),
			huh.NewInput().
				Title("Name").
				Placeholder("Jane Doe").
				Value(&name).
				Validate(required("name")),
			huh.NewInput().
				Title("Email").
				Placeholder("jane@example.com").
				Value(&email).
				Validate(required("email")),
		),
	)
	if err := form.Run(); err != nil {
		return "", "", err
	}
	return name, email, nil
}

// login valida y entra. Un error de validación no llega al servicio.
func login(ctx context.Context, c *session.Coordinator, name, email string) error {
	creds, err := session.ValidateCredentials(name, email)
	if err != nil {
		return err
	}
	return c.Login(ctx, creds.Name, creds.Email)
}
