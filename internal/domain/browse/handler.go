package browse

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"dog-match/internal/domain/catalog"

	"github.com/go-chi/chi/v5"
)

// Visitor es lo que el handler necesita saber del workspace del request.
type Visitor struct {
	Controller    *Controller
	Authenticated bool
}

type Resolver func(r *http.Request) (Visitor, bool)

// RegisterPublicRoutes: rutas que no necesitan workspace.
func RegisterPublicRoutes(r chi.Router) {
	r.Get("/sorts", sortOptionsHandler)
}

func RegisterRoutes(r chi.Router, resolve Resolver) {
	r.Get("/breeds", withVisitor(resolve, listBreedsHandler))

	r.Route("/browse", func(br chi.Router) {
		br.Get("/", withVisitor(resolve, snapshotHandler))
		br.Post("/search", withVisitor(resolve, searchHandler))

		br.Post("/breeds", withVisitor(resolve, selectBreedHandler))
		br.Delete("/breeds/{breed}", withVisitor(resolve, removeBreedHandler))

		br.Put("/sort", withVisitor(resolve, changeSortHandler))

		br.Post("/page", withVisitor(resolve, goToPageHandler))
		br.Post("/page/next", withVisitor(resolve, nextPageHandler))
		br.Post("/page/prev", withVisitor(resolve, prevPageHandler))

		br.Post("/favorites/{dogID}", withVisitor(resolve, toggleFavoriteHandler))

		br.Post("/match", withVisitor(resolve, findMatchHandler))
		br.Delete("/match", withVisitor(resolve, dismissMatchHandler))
	})
}

type searchRequest struct {
	// Breeds ausente = usar las seleccionadas; [] = sin filtro.
	Breeds   []string `json:"breeds"`
	ZipCodes []string `json:"zipCodes"`
	AgeMin   *int     `json:"ageMin"`
	AgeMax   *int     `json:"ageMax"`
	From     string   `json:"from"`
	Sort     string   `json:"sort"`
}

type breedRequest struct {
	Breed string `json:"breed"`
}

type sortRequest struct {
	Sort string `json:"sort"`
}

type pageRequest struct {
	Cursor string `json:"cursor"`
}

type favoriteResponse struct {
	DogID     string   `json:"dog_id"`
	Favorite  bool     `json:"favorite"`
	Favorites []string `json:"favorites"`
}

type matchResponse struct {
	Dog catalog.Dog `json:"dog"`
}

// failureResponse lleva el mensaje del aviso y el estado (que no cambió).
type failureResponse struct {
	Error string `json:"error"`
	State State  `json:"state"`
}

func withVisitor(resolve Resolver, h func(*Controller) http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := resolve(r)
		if !ok || v.Controller == nil {
			http.Error(w, "workspace required", http.StatusInternalServerError)
			return
		}
		if !v.Authenticated {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		h(v.Controller)(w, r)
	}
}

// listBreedsHandler godoc
// @Summary  Razas disponibles, ordenadas
// @Tags     browse
// @Produce  json
// @Success  200 {array} string
// @Failure  401
// @Failure  502 {object} failureResponse
// @Router   /breeds [get]
func listBreedsHandler(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		breeds, err := c.LoadBreeds(r.Context())
		if err != nil {
			writeFailure(w, c, http.StatusBadGateway, msgBreedsFailed)
			return
		}
		writeJSON(w, http.StatusOK, breeds)
	}
}

// sortOptionsHandler godoc
// @Summary  Opciones de orden
// @Tags     browse
// @Produce  json
// @Success  200 {array} catalog.SortOption
// @Router   /sorts [get]
func sortOptionsHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalog.SortOptions())
}

// snapshotHandler godoc
// @Summary  Estado de navegación
// @Tags     browse
// @Produce  json
// @Success  200 {object} State
// @Failure  401
// @Router   /browse [get]
func snapshotHandler(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, c.Snapshot())
	}
}

// searchHandler godoc
// @Summary  Buscar perros
// @Tags     browse
// @Accept   json
// @Produce  json
// @Param    body body searchRequest false "filtros"
// @Success  200 {object} State
// @Failure  400 {object} failureResponse
// @Failure  401
// @Failure  502 {object} failureResponse
// @Router   /browse/search [post]
func searchHandler(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeFailure(w, c, http.StatusBadRequest, "invalid json")
				return
			}
		}

		o := Overrides{
			Breeds:   req.Breeds,
			ZipCodes: req.ZipCodes,
			AgeMin:   req.AgeMin,
			AgeMax:   req.AgeMax,
			From:     strings.TrimSpace(req.From),
		}
		if strings.TrimSpace(req.Sort) != "" {
			s, err := catalog.ParseSort(req.Sort)
			if err != nil {
				writeFailure(w, c, http.StatusBadRequest, err.Error())
				return
			}
			o.Sort = s
		}

		if err := c.Search(r.Context(), o); err != nil {
			writeFailure(w, c, http.StatusBadGateway, msgSearchFailed)
			return
		}
		writeJSON(w, http.StatusOK, c.Snapshot())
	}
}

// selectBreedHandler godoc
// @Summary  Agregar filtro de raza
// @Tags     browse
// @Accept   json
// @Produce  json
// @Param    body body breedRequest true "raza"
// @Success  200 {object} State
// @Failure  400 {object} failureResponse
// @Failure  502 {object} failureResponse
// @Router   /browse/breeds [post]
func selectBreedHandler(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req breedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Breed) == "" {
			writeFailure(w, c, http.StatusBadRequest, "breed is required")
			return
		}

		if err := c.SelectBreed(r.Context(), req.Breed); err != nil {
			writeFailure(w, c, http.StatusBadGateway, msgSearchFailed)
			return
		}
		writeJSON(w, http.StatusOK, c.Snapshot())
	}
}

// removeBreedHandler godoc
// @Summary  Quitar filtro de raza
// @Tags     browse
// @Produce  json
// @Param    breed path string true "raza"
// @Success  200 {object} State
// @Failure  502 {object} failureResponse
// @Router   /browse/breeds/{breed} [delete]
func removeBreedHandler(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := c.RemoveBreed(r.Context(), chi.URLParam(r, "breed")); err != nil {
			writeFailure(w, c, http.StatusBadGateway, msgSearchFailed)
			return
		}
		writeJSON(w, http.StatusOK, c.Snapshot())
	}
}

// changeSortHandler godoc
// @Summary  Cambiar orden
// @Tags     browse
// @Accept   json
// @Produce  json
// @Param    body body sortRequest true "campo:dirección"
// @Success  200 {object} State
// @Failure  400 {object} failureResponse
// @Failure  502 {object} failureResponse
// @Router   /browse/sort [put]
func changeSortHandler(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sortRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeFailure(w, c, http.StatusBadRequest, "invalid json")
			return
		}
		s, err := catalog.ParseSort(req.Sort)
		if err != nil {
			writeFailure(w, c, http.StatusBadRequest, err.Error())
			return
		}

		if err := c.ChangeSort(r.Context(), s); err != nil {
			writeFailure(w, c, http.StatusBadGateway, msgSearchFailed)
			return
		}
		writeJSON(w, http.StatusOK, c.Snapshot())
	}
}

// goToPageHandler godoc
// @Summary  Ir a la página de un cursor
// @Tags     browse
// @Accept   json
// @Produce  json
// @Param    body body pageRequest true "cursor opaco"
// @Success  200 {object} State
// @Failure  400 {object} failureResponse
// @Failure  502 {object} failureResponse
// @Router   /browse/page [post]
func goToPageHandler(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeFailure(w, c, http.StatusBadRequest, "invalid json")
			return
		}
		writePage(w, c, c.GoToPage(r.Context(), req.Cursor))
	}
}

// nextPageHandler godoc
// @Summary  Página siguiente (no-op si no hay)
// @Tags     browse
// @Produce  json
// @Success  200 {object} State
// @Failure  502 {object} failureResponse
// @Router   /browse/page/next [post]
func nextPageHandler(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writePage(w, c, c.NextPage(r.Context()))
	}
}

// prevPageHandler godoc
// @Summary  Página anterior (no-op si no hay)
// @Tags     browse
// @Produce  json
// @Success  200 {object} State
// @Failure  502 {object} failureResponse
// @Router   /browse/page/prev [post]
func prevPageHandler(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writePage(w, c, c.PrevPage(r.Context()))
	}
}

func writePage(w http.ResponseWriter, c *Controller, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, c.Snapshot())
	case errors.Is(err, catalog.ErrMalformedCursor), errors.Is(err, catalog.ErrCursorMissingFrom):
		writeFailure(w, c, http.StatusBadRequest, msgBadCursor)
	default:
		writeFailure(w, c, http.StatusBadGateway, msgSearchFailed)
	}
}

// toggleFavoriteHandler godoc
// @Summary  Marcar/desmarcar favorito
// @Tags     browse
// @Produce  json
// @Param    dogID path string true "id del perro"
// @Success  200 {object} favoriteResponse
// @Router   /browse/favorites/{dogID} [post]
func toggleFavoriteHandler(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "dogID"))
		if id == "" {
			http.Error(w, "dog id required", http.StatusBadRequest)
			return
		}

		fav := c.ToggleFavorite(id)
		writeJSON(w, http.StatusOK, favoriteResponse{
			DogID:     id,
			Favorite:  fav,
			Favorites: c.Favorites(),
		})
	}
}

// findMatchHandler godoc
// @Summary  Pedir un match sobre los favoritos
// @Tags     browse
// @Produce  json
// @Success  200 {object} matchResponse
// @Failure  409 {object} failureResponse
// @Failure  502 {object} failureResponse
// @Router   /browse/match [post]
func findMatchHandler(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dog, err := c.FindMatch(r.Context())
		if err != nil {
			if IsNoFavorites(err) {
				writeFailure(w, c, http.StatusConflict, msgNoFavorites)
				return
			}
			writeFailure(w, c, http.StatusBadGateway, msgMatchFailed)
			return
		}
		writeJSON(w, http.StatusOK, matchResponse{Dog: dog})
	}
}

// dismissMatchHandler godoc
// @Summary  Ocultar el match
// @Tags     browse
// @Success  204
// @Router   /browse/match [delete]
func dismissMatchHandler(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c.DismissMatch()
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeFailure(w http.ResponseWriter, c *Controller, status int, msg string) {
	writeJSON(w, status, failureResponse{Error: msg, State: c.Snapshot()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
