package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Resolver devuelve el coordinador del visitante del request.
type Resolver func(r *http.Request) (*Coordinator, bool)

// AfterLogout corre tras un logout exitoso, después de escribir la respuesta
// (p.ej. liberar el workspace del visitante). Puede ser nil.
type AfterLogout func(r *http.Request)

func RegisterRoutes(r chi.Router, resolve Resolver, after AfterLogout) {
	r.Route("/session", func(sr chi.Router) {
		sr.Get("/", getSessionHandler(resolve))
		sr.Post("/login", loginHandler(resolve))
		sr.Post("/logout", logoutHandler(resolve, after))
	})
}

type loginRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type sessionResponse struct {
	Authenticated bool  `json:"authenticated"`
	State         State `json:"state"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// getSessionHandler godoc
// @Summary  Estado de sesión
// @Tags     session
// @Produce  json
// @Success  200 {object} sessionResponse
// @Router   /session [get]
func getSessionHandler(resolve Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := resolve(r)
		if !ok {
			http.Error(w, "workspace required", http.StatusInternalServerError)
			return
		}

		c.CheckSession(r.Context())
		writeJSON(w, http.StatusOK, toSessionResponse(c))
	}
}

// loginHandler godoc
// @Summary  Login contra el servicio remoto
// @Tags     session
// @Accept   json
// @Produce  json
// @Param    body body loginRequest true "credenciales"
// @Success  200 {object} sessionResponse
// @Failure  400 {object} errorResponse
// @Failure  401 {object} errorResponse
// @Failure  502 {object} errorResponse
// @Router   /session/login [post]
func loginHandler(resolve Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := resolve(r)
		if !ok {
			http.Error(w, "workspace required", http.StatusInternalServerError)
			return
		}

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
			return
		}

		creds, err := ValidateCredentials(req.Name, req.Email)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name and email are required"})
			return
		}

		if err := c.Login(r.Context(), creds.Name, creds.Email); err != nil {
			switch {
			case errors.Is(err, ErrLoginRejected):
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Please check your information and try again."})
			default:
				writeJSON(w, http.StatusBadGateway, errorResponse{Error: "Please check your information and try again."})
			}
			return
		}

		writeJSON(w, http.StatusOK, toSessionResponse(c))
	}
}

// logoutHandler godoc
// @Summary  Logout; limpia favoritos y filtros
// @Tags     session
// @Produce  json
// @Success  200 {object} sessionResponse
// @Failure  502 {object} errorResponse
// @Router   /session/logout [post]
func logoutHandler(resolve Resolver, after AfterLogout) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := resolve(r)
		if !ok {
			http.Error(w, "workspace required", http.StatusInternalServerError)
			return
		}

		if err := c.Logout(r.Context()); err != nil {
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: "Logout failed. Please try again."})
			return
		}

		writeJSON(w, http.StatusOK, toSessionResponse(c))
		if after != nil {
			after(r)
		}
	}
}

func toSessionResponse(c *Coordinator) sessionResponse {
	st := c.State()
	return sessionResponse{Authenticated: st == Authenticated, State: st}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
