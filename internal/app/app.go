// Package app arma las piezas compartidas por el servidor y el CLI a partir
// de la configuración: logger, tracing, clientes remotos y workspaces.
package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"dog-match/internal/adapters/fetchapi"
	mem "dog-match/internal/adapters/storage/memory"
	"dog-match/internal/config"
	"dog-match/internal/domain/browse"
	"dog-match/internal/domain/workspace"
	"dog-match/internal/platform/httpclient"
	"dog-match/internal/platform/logger"
	"dog-match/internal/platform/telemetry"
	"dog-match/internal/router"
)

type App struct {
	Config     config.Config
	Logger     logger.Logger
	Telemetry  *telemetry.Provider
	Workspaces *workspace.Service
}

// New valida cfg y arma todo. logOut nil = stdout.
func New(ctx context.Context, cfg config.Config, logOut io.Writer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.AppName,
		Output: logOut,
	})

	tp, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
	})
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Logger: log, Telemetry: tp}
	a.Workspaces = workspace.NewService(mem.NewWorkspaceRepo(), fetchapi.NewWorkspaceFactory(a.FetchConfig(), a.BrowseOptions()))
	return a, nil
}

func (a *App) FetchConfig() fetchapi.Config {
	return fetchapi.Config{
		BaseURL: a.Config.BaseURL,
		Timeout: a.Config.HTTPTimeout,
		Tracer:  a.Telemetry.Tracer(),
		Logger:  a.Logger,
	}
}

func (a *App) BrowseOptions() browse.Options {
	return browse.Options{
		PageSize:    a.Config.PageSize,
		DefaultSort: a.Config.Sort(),
	}
}

func (a *App) Handler() http.Handler {
	return router.NewRouter(router.Options{
		Workspaces:      a.Workspaces,
		Logger:          a.Logger,
		WorkspaceCookie: a.Config.WorkspaceCookie,
	})
}

// Serve escucha hasta que ctx se cancela y después cierra con gracia.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         a.Config.ListenAddr,
		Handler:      a.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: writeTimeout(a.Config.HTTPTimeout),
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go a.Workspaces.RunSweeper(sweepCtx, sweepInterval(a.Config.WorkspaceIdle), a.Config.WorkspaceIdle, func(closed int, err error) {
		if err != nil {
			a.Logger.Warn("workspace sweep failed", map[string]any{"error": err})
			return
		}
		if closed > 0 {
			a.Logger.Info("idle workspaces closed", map[string]any{"closed": closed})
		}
	})

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("starting server", map[string]any{"addr": a.Config.ListenAddr, "base_url": a.Config.BaseURL})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.Logger.Info("shutting down", nil)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// writeTimeout cubre un handler que hace dos llamadas remotas (buscar y
// resolver). http_timeout 0 usa el timeout por defecto del cliente.
func writeTimeout(httpTimeout time.Duration) time.Duration {
	if httpTimeout <= 0 {
		httpTimeout = httpclient.DefaultTimeout
	}
	return 2*httpTimeout + 5*time.Second
}

func sweepInterval(idle time.Duration) time.Duration {
	iv := idle / 4
	if iv < time.Second {
		iv = time.Second
	}
	if iv > 5*time.Minute {
		iv = 5 * time.Minute
	}
	return iv
}

func (a *App) Close(ctx context.Context) error {
	return a.Telemetry.Shutdown(ctx)
}
