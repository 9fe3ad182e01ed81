package router

import (
	"errors"
	"net/http"

	_ "dog-match/docs"
	"dog-match/internal/domain/browse"
	"dog-match/internal/domain/notice"
	"dog-match/internal/domain/session"
	"dog-match/internal/domain/workspace"
	"dog-match/internal/middleware"
	"dog-match/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Workspaces *workspace.Service

	// Opcionales.
	Logger          logger.Logger
	WorkspaceCookie string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	browse.RegisterPublicRoutes(r)

	// Todo lo demás necesita el workspace del visitante.
	r.Group(func(wr chi.Router) {
		wr.Use(middleware.WorkspaceContext(opts.Workspaces, opts.WorkspaceCookie, log))

		session.RegisterRoutes(wr, resolveCoordinator, releaseWorkspace(opts.Workspaces, log))
		browse.RegisterRoutes(wr, resolveVisitor)
		notice.RegisterRoutes(wr, resolveBoard)
	})

	return r
}

// releaseWorkspace libera el workspace tras el logout: el estado ya quedó
// limpio y el próximo request del visitante abre uno nuevo.
func releaseWorkspace(svc *workspace.Service, log logger.Logger) session.AfterLogout {
	return func(r *http.Request) {
		ws, ok := middleware.GetWorkspace(r.Context())
		if !ok {
			return
		}
		if err := svc.Close(r.Context(), ws.ID); err != nil && !errors.Is(err, workspace.ErrNotFound) {
			log.Warn("release workspace failed", map[string]any{"workspace": ws.ID, "error": err})
		}
	}
}

func resolveCoordinator(r *http.Request) (*session.Coordinator, bool) {
	ws, ok := middleware.GetWorkspace(r.Context())
	if !ok {
		return nil, false
	}
	return ws.Session, true
}

func resolveVisitor(r *http.Request) (browse.Visitor, bool) {
	ws, ok := middleware.GetWorkspace(r.Context())
	if !ok {
		return browse.Visitor{}, false
	}
	return browse.Visitor{
		Controller:    ws.Browse,
		Authenticated: ws.Session.Authenticated(),
	}, true
}

func resolveBoard(r *http.Request) (*notice.Board, bool) {
	ws, ok := middleware.GetWorkspace(r.Context())
	if !ok {
		return nil, false
	}
	return ws.Notices, true
}
