package notice

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Resolver devuelve el tablero del visitante del request.
type Resolver func(r *http.Request) (*Board, bool)

func RegisterRoutes(r chi.Router, resolve Resolver) {
	r.Route("/notices", func(nr chi.Router) {
		nr.Get("/", listNoticesHandler(resolve))
		nr.Delete("/{noticeID}", dismissNoticeHandler(resolve))
	})
}

// listNoticesHandler godoc
// @Summary  Avisos pendientes
// @Tags     notices
// @Produce  json
// @Success  200 {array} Notice
// @Router   /notices [get]
func listNoticesHandler(resolve Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, ok := resolve(r)
		if !ok {
			http.Error(w, "workspace required", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, b.List())
	}
}

// dismissNoticeHandler godoc
// @Summary  Descartar un aviso
// @Tags     notices
// @Param    noticeID path string true "id del aviso"
// @Success  204
// @Failure  404
// @Router   /notices/{noticeID} [delete]
func dismissNoticeHandler(resolve Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, ok := resolve(r)
		if !ok {
			http.Error(w, "workspace required", http.StatusInternalServerError)
			return
		}

		if !b.Dismiss(chi.URLParam(r, "noticeID")) {
			http.Error(w, "notice not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
