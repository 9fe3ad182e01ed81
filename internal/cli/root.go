package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"dog-match/internal/app"
	"dog-match/internal/config"

	"github.com/spf13/cobra"
)

var (
	// Version se inyecta en build (-ldflags "-X dog-match/internal/cli.Version=...").
	Version = "dev"
	Commit  = "none"
)

// globalFlags aplican a todos los subcomandos.
type globalFlags struct {
	configPath string
	baseURL    string
	logLevel   string
}

// NewRootCmd arma el árbol de comandos. Cada llamada devuelve uno nuevo
// (los tests no comparten estado de flags).
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "dogmatch",
		Short: "Browse adoptable dogs and find your match",
		Long: `dogmatch talks to the Fetch dog service: log in, browse and filter dogs,
collect favorites and ask the service for a match.

Configuration comes from flags, environment variables or a YAML file
(--config or DOGMATCH_CONFIG).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&g.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&g.baseURL, "base-url", "", "dog service base URL (default "+config.DefaultBaseURL+")")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "debug|info|warn|error")

	root.AddCommand(
		newServeCmd(g),
		newBreedsCmd(g),
		newShellCmd(g),
		newVersionCmd(),
	)
	return root
}

// Execute es lo que llama main.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadApp: archivo + env, después flags encima.
// Los comandos interactivos loguean a stderr para no ensuciar la salida.
func loadApp(ctx context.Context, cmd *cobra.Command, g *globalFlags) (*app.App, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(g.baseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(g.logLevel); v != "" {
		cfg.Log.Level = v
	}
	return app.New(ctx, cfg, cmd.ErrOrStderr())
}
