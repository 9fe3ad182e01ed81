package browse

import (
	"context"
	"errors"
	"strings"
	"sync"

	"dog-match/internal/domain/catalog"
	"dog-match/internal/domain/match"
	"dog-match/internal/domain/notice"
	"dog-match/internal/platform/httpclient"
	"dog-match/internal/platform/logger"
	ports "dog-match/internal/ports/catalog"
)

const (
	titleError       = "Error"
	titleNoFavorites = "No Favorites"
	titleMatch       = "It's a Match!"

	msgSearchFailed = "Failed to search dogs. Please try again."
	msgBreedsFailed = "Failed to load dog breeds."
	msgMatchFailed  = "Failed to find your match. Please try again."
	msgNoFavorites  = "Please add some dogs to your favorites first!"
	msgBadCursor    = "Could not open that page."
)

type Options struct {
	PageSize    int
	DefaultSort catalog.Sort
}

// Controller es dueño del estado de navegación de un usuario y ordena las
// llamadas a catálogo y match.
//
// El mutex nunca se mantiene durante una llamada remota. Cada Search toma un
// número de secuencia; la respuesta solo se aplica si sigue siendo la última
// emitida, así dos búsquedas superpuestas no se pisan en desorden.
type Controller struct {
	catalog  ports.Catalog
	matcher  ports.Matcher
	notifier notice.Notifier
	log      logger.Logger
	opts     Options

	mu    sync.Mutex
	state State
	seq   uint64
}

func NewController(cat ports.Catalog, m ports.Matcher, n notice.Notifier, l logger.Logger, opts Options) *Controller {
	if opts.PageSize <= 0 {
		opts.PageSize = catalog.DefaultPageSize
	}
	if strings.TrimSpace(string(opts.DefaultSort)) == "" {
		opts.DefaultSort = catalog.DefaultSort
	}
	if n == nil {
		n = notice.Discard{}
	}
	if l == nil {
		l = logger.Nop()
	}
	c := &Controller{
		catalog:  cat,
		matcher:  m,
		notifier: n,
		log:      l,
		opts:     opts,
	}
	c.state = c.initialState()
	return c
}

func (c *Controller) initialState() State {
	return State{
		Breeds:         []string{},
		SelectedBreeds: []string{},
		SortOrder:      c.opts.DefaultSort,
		Dogs:           []catalog.Dog{},
		Favorites:      []string{},
	}
}

// Snapshot devuelve una copia profunda del estado.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Favorites en orden de inserción.
func (c *Controller) Favorites() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneStrings(c.state.Favorites)
}

// LoadBreeds trae las razas y guarda una copia ordenada para mostrar.
func (c *Controller) LoadBreeds(ctx context.Context) ([]string, error) {
	breeds, err := c.catalog.ListBreeds(ctx)
	if err != nil {
		c.raise(notice.LevelError, titleError, msgBreedsFailed, err)
		return nil, err
	}
	sorted := catalog.SortBreeds(breeds)

	c.mu.Lock()
	c.state.Breeds = sorted
	c.mu.Unlock()

	return cloneStrings(sorted), nil
}

// Search arma la consulta, busca ids y los resuelve a perros.
//
// Si falla cualquiera de los dos pasos, dogs/total/cursores quedan como
// estaban y se levanta un aviso. IsLoading se limpia siempre.
func (c *Controller) Search(ctx context.Context, o Overrides) error {
	c.mu.Lock()
	q := c.buildQuery(o)
	c.seq++
	seq := c.seq
	c.state.IsLoading = true
	c.mu.Unlock()

	res, dogs, err := c.fetchPage(ctx, q)

	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		c.log.Debug("discarding stale search response", map[string]any{"seq": seq})
		return nil
	}
	c.state.IsLoading = false
	if err == nil {
		c.state.Dogs = dogs
		c.state.Total = res.Total
		c.state.NextPage = res.Next
		c.state.PrevPage = res.Prev
		c.state.CurrentPage = q.From
	}
	c.mu.Unlock()

	if err != nil {
		c.raise(notice.LevelError, titleError, msgSearchFailed, err)
		return err
	}
	return nil
}

func (c *Controller) buildQuery(o Overrides) catalog.SearchQuery {
	q := catalog.SearchQuery{
		Size: c.opts.PageSize,
		Sort: c.state.SortOrder,
	}
	if len(c.state.SelectedBreeds) > 0 {
		q.Breeds = cloneStrings(c.state.SelectedBreeds)
	}

	if o.Breeds != nil {
		q.Breeds = nil
		if len(o.Breeds) > 0 {
			q.Breeds = cloneStrings(o.Breeds)
		}
	}
	if len(o.ZipCodes) > 0 {
		q.ZipCodes = cloneStrings(o.ZipCodes)
	}
	if o.AgeMin != nil {
		v := *o.AgeMin
		q.AgeMin = &v
	}
	if o.AgeMax != nil {
		v := *o.AgeMax
		q.AgeMax = &v
	}
	if o.Size > 0 {
		q.Size = o.Size
	}
	if o.From != "" {
		q.From = o.From
	}
	if o.Sort != "" {
		q.Sort = o.Sort
	}
	return q.WithDefaults()
}

func (c *Controller) fetchPage(ctx context.Context, q catalog.SearchQuery) (catalog.SearchResult, []catalog.Dog, error) {
	res, err := c.catalog.Search(ctx, q)
	if err != nil {
		return catalog.SearchResult{}, nil, err
	}
	// Sin ids no se llama a resolve (sería un request inválido).
	if len(res.ResultIDs) == 0 {
		return res, []catalog.Dog{}, nil
	}
	dogs, err := c.catalog.ResolveDogs(ctx, res.ResultIDs)
	if err != nil {
		return catalog.SearchResult{}, nil, err
	}
	return res, orderByIDs(dogs, res.ResultIDs), nil
}

// SelectBreed agrega el filtro y vuelve a la primera página.
func (c *Controller) SelectBreed(ctx context.Context, breed string) error {
	breed = strings.TrimSpace(breed)
	if breed == "" {
		return nil
	}

	c.mu.Lock()
	if indexOf(c.state.SelectedBreeds, breed) >= 0 {
		c.mu.Unlock()
		return nil
	}
	c.state.SelectedBreeds = append(c.state.SelectedBreeds, breed)
	breeds := cloneStrings(c.state.SelectedBreeds)
	c.mu.Unlock()

	return c.Search(ctx, Overrides{Breeds: breeds})
}

// RemoveBreed saca el filtro; si no queda ninguno la búsqueda va sin filtro.
func (c *Controller) RemoveBreed(ctx context.Context, breed string) error {
	breed = strings.TrimSpace(breed)

	c.mu.Lock()
	i := indexOf(c.state.SelectedBreeds, breed)
	if i < 0 {
		c.mu.Unlock()
		return nil
	}
	c.state.SelectedBreeds = append(c.state.SelectedBreeds[:i:i], c.state.SelectedBreeds[i+1:]...)
	breeds := cloneStrings(c.state.SelectedBreeds)
	c.mu.Unlock()

	return c.Search(ctx, Overrides{Breeds: breeds})
}

// ChangeSort reemplaza el orden y vuelve a la primera página.
// El valor no se valida acá: si es inválido lo rechaza el servicio.
func (c *Controller) ChangeSort(ctx context.Context, s catalog.Sort) error {
	c.mu.Lock()
	c.state.SortOrder = s
	c.mu.Unlock()

	return c.Search(ctx, Overrides{Sort: s})
}

// ToggleFavorite es puramente local. Devuelve si quedó como favorito.
func (c *Controller) ToggleFavorite(dogID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := indexOf(c.state.Favorites, dogID); i >= 0 {
		c.state.Favorites = append(c.state.Favorites[:i:i], c.state.Favorites[i+1:]...)
		return false
	}
	c.state.Favorites = append(c.state.Favorites, dogID)
	return true
}

// FindMatch pide un match sobre los favoritos y lo resuelve a un perro.
// Con favoritos vacíos no hace ninguna llamada.
func (c *Controller) FindMatch(ctx context.Context) (catalog.Dog, error) {
	favs := c.Favorites()
	if len(favs) == 0 {
		c.raise(notice.LevelError, titleNoFavorites, msgNoFavorites, match.ErrNoFavorites)
		return catalog.Dog{}, match.ErrNoFavorites
	}

	id, err := c.matcher.ComputeMatch(ctx, favs)
	if err != nil {
		c.raise(notice.LevelError, titleError, msgMatchFailed, err)
		return catalog.Dog{}, err
	}

	dogs, err := c.catalog.ResolveDogs(ctx, []string{id})
	if err == nil && len(dogs) == 0 {
		err = match.ErrEmptyResolution
	}
	if err != nil {
		c.raise(notice.LevelError, titleError, msgMatchFailed, err)
		return catalog.Dog{}, err
	}

	matched := dogs[0]
	c.mu.Lock()
	c.state.MatchedDog = &matched
	c.state.ShowMatch = true
	c.mu.Unlock()

	c.notifier.Notify(notice.LevelInfo, titleMatch, matched.Name+" could be your perfect companion!")
	c.log.Info("match found", map[string]any{"dog_id": matched.ID, "favorites": len(favs)})
	return matched, nil
}

// DismissMatch oculta el match; el último perro elegido se conserva.
func (c *Controller) DismissMatch() {
	c.mu.Lock()
	c.state.ShowMatch = false
	c.mu.Unlock()
}

// GoToPage navega con un cursor opaco devuelto por el servicio.
// Cursor vacío = no-op. Cursor sin "from" o mal formado se rechaza sin llamar.
func (c *Controller) GoToPage(ctx context.Context, cursor string) error {
	if strings.TrimSpace(cursor) == "" {
		return nil
	}
	from, err := catalog.FromCursor(cursor)
	if err != nil {
		c.raise(notice.LevelError, titleError, msgBadCursor, err)
		return err
	}
	return c.Search(ctx, Overrides{From: from})
}

func (c *Controller) NextPage(ctx context.Context) error {
	c.mu.Lock()
	cursor := c.state.NextPage
	c.mu.Unlock()
	return c.GoToPage(ctx, cursor)
}

func (c *Controller) PrevPage(ctx context.Context) error {
	c.mu.Lock()
	cursor := c.state.PrevPage
	c.mu.Unlock()
	return c.GoToPage(ctx, cursor)
}

// Reset vuelve al estado inicial (logout). Las búsquedas en vuelo se descartan.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.state = c.initialState()
}

func (c *Controller) raise(level notice.Level, title, msg string, err error) {
	fields := map[string]any{"title": title}
	if err != nil {
		fields["error"] = err
		if status := httpclient.StatusOf(err); status != 0 {
			fields["status"] = status
		}
	}
	c.log.Warn(msg, fields)
	c.notifier.Notify(level, title, msg)
}

// IsNoFavorites ayuda a los bordes a distinguir el caso "sin favoritos".
func IsNoFavorites(err error) bool {
	return errors.Is(err, match.ErrNoFavorites)
}
