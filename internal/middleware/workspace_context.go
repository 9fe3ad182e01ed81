package middleware

import (
	"context"
	"net/http"
	"strings"

	"dog-match/internal/domain/workspace"
	"dog-match/internal/platform/logger"
)

type ctxKey string

const workspaceKey ctxKey = "workspace"

const DefaultWorkspaceCookie = "dogmatch_ws"

// WorkspaceContext:
// - Si viene la cookie del workspace y existe => lo pone en el contexto.
// - Si no viene o ya no existe (p.ej. reinicio del proceso) => abre uno nuevo y setea la cookie.
// - Si no se puede abrir, responde 503: sin workspace ningún handler puede operar.
func WorkspaceContext(svc *workspace.Service, cookieName string, log logger.Logger) func(http.Handler) http.Handler {
	if strings.TrimSpace(cookieName) == "" {
		cookieName = DefaultWorkspaceCookie
	}
	if log == nil {
		log = logger.Nop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ck, err := r.Cookie(cookieName); err == nil && strings.TrimSpace(ck.Value) != "" {
				if ws, err := svc.Get(r.Context(), ck.Value); err == nil {
					next.ServeHTTP(w, r.WithContext(WithWorkspace(r.Context(), ws)))
					return
				}
			}

			ws, err := svc.Open(r.Context())
			if err != nil {
				log.Error("open workspace failed", map[string]any{"error": err})
				http.Error(w, "workspace unavailable", http.StatusServiceUnavailable)
				return
			}
			log.Debug("workspace opened", map[string]any{"workspace": ws.ID})

			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    ws.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			next.ServeHTTP(w, r.WithContext(WithWorkspace(r.Context(), ws)))
		})
	}
}

func WithWorkspace(ctx context.Context, ws *workspace.Workspace) context.Context {
	return context.WithValue(ctx, workspaceKey, ws)
}

func GetWorkspace(ctx context.Context) (*workspace.Workspace, bool) {
	v := ctx.Value(workspaceKey)
	if v == nil {
		return nil, false
	}
	ws, ok := v.(*workspace.Workspace)
	return ws, ok && ws != nil
}
