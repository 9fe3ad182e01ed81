package fetchapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"dog-match/internal/domain/catalog"
	"dog-match/internal/platform/httpclient"
	ports "dog-match/internal/ports/catalog"
)

const (
	breedsPath = "/dogs/breeds"
	searchPath = "/dogs/search"
	dogsPath   = "/dogs"
)

// CatalogClient implementa ports.Catalog contra /dogs*.
type CatalogClient struct {
	http *httpclient.Client
}

var _ ports.Catalog = (*CatalogClient)(nil)

func NewCatalogClient(c *httpclient.Client) *CatalogClient {
	return &CatalogClient{http: c}
}

// ListBreeds devuelve las razas tal como vienen (sin orden garantizado).
func (c *CatalogClient) ListBreeds(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.http.DoJSON(ctx, http.MethodGet, breedsPath, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("%w: list breeds: %w", catalog.ErrFetchFailed, err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// Search no reordena nada: el orden lo define el parámetro sort.
func (c *CatalogClient) Search(ctx context.Context, q catalog.SearchQuery) (catalog.SearchResult, error) {
	var out catalog.SearchResult
	if err := c.http.DoJSON(ctx, http.MethodGet, searchPath, EncodeSearchQuery(q), nil, &out); err != nil {
		return catalog.SearchResult{}, fmt.Errorf("%w: search: %w", catalog.ErrFetchFailed, err)
	}
	if out.ResultIDs == nil {
		out.ResultIDs = []string{}
	}
	return out, nil
}

// ResolveDogs no garantiza que el orden de salida coincida con ids.
// Con ids vacío no se llama al servicio.
func (c *CatalogClient) ResolveDogs(ctx context.Context, ids []string) ([]catalog.Dog, error) {
	if len(ids) == 0 {
		return []catalog.Dog{}, nil
	}
	var out []catalog.Dog
	if err := c.http.DoJSON(ctx, http.MethodPost, dogsPath, nil, ids, &out); err != nil {
		return nil, fmt.Errorf("%w: resolve dogs: %w", catalog.ErrFetchFailed, err)
	}
	if out == nil {
		out = []catalog.Dog{}
	}
	return out, nil
}

// EncodeSearchQuery arma los query params de GET /dogs/search.
// breeds/zipCodes van repetidos, uno por valor, en el orden recibido.
func EncodeSearchQuery(q catalog.SearchQuery) url.Values {
	q = q.WithDefaults()
	v := url.Values{}

	for _, b := range q.Breeds {
		v.Add("breeds", b)
	}
	for _, z := range q.ZipCodes {
		v.Add("zipCodes", z)
	}
	if q.AgeMin != nil {
		v.Set("ageMin", strconv.Itoa(*q.AgeMin))
	}
	if q.AgeMax != nil {
		v.Set("ageMax", strconv.Itoa(*q.AgeMax))
	}
	v.Set("size", strconv.Itoa(q.Size))
	if q.From != "" {
		v.Set("from", q.From)
	}
	v.Set("sort", string(q.Sort))
	return v
}
