package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	DefaultPageSize = 25
	DefaultSort     = Sort("breed:asc")
)

var (
	ErrFetchFailed = errors.New("catalog fetch failed")
	ErrInvalidSort = errors.New("invalid sort")
)

// Dog es el registro que devuelve el servicio remoto. Inmutable una vez traído.
type Dog struct {
	ID      string `json:"id"`
	Img     string `json:"img"`
	Name    string `json:"name"`
	Age     int    `json:"age"`
	ZipCode string `json:"zip_code"`
	Breed   string `json:"breed"`
}

// AgeLabel: "1 year old" / "3 years old".
func (d Dog) AgeLabel() string {
	if d.Age == 1 {
		return "1 year old"
	}
	return fmt.Sprintf("%d years old", d.Age)
}

// SortField define los campos por los que se puede ordenar.
type SortField string

const (
	SortByBreed SortField = "breed"
	SortByName  SortField = "name"
	SortByAge   SortField = "age"
)

type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// Sort viaja tal cual como "field:direction".
type Sort string

func NewSort(f SortField, d SortDirection) Sort {
	return Sort(string(f) + ":" + string(d))
}

// ParseSort valida contra los campos/direcciones conocidos.
// El cliente remoto no lo exige; lo usan los bordes (handlers, CLI).
func ParseSort(s string) (Sort, error) {
	field, dir, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, s)
	}
	switch SortField(field) {
	case SortByBreed, SortByName, SortByAge:
	default:
		return "", fmt.Errorf("%w: unknown field %q", ErrInvalidSort, field)
	}
	switch SortDirection(dir) {
	case Asc, Desc:
	default:
		return "", fmt.Errorf("%w: unknown direction %q", ErrInvalidSort, dir)
	}
	return NewSort(SortField(field), SortDirection(dir)), nil
}

type SortOption struct {
	Value Sort   `json:"value"`
	Label string `json:"label"`
}

// SortOptions son las opciones que se ofrecen al usuario, en orden de menú.
func SortOptions() []SortOption {
	return []SortOption{
		{Value: NewSort(SortByBreed, Asc), Label: "Breed (A-Z)"},
		{Value: NewSort(SortByBreed, Desc), Label: "Breed (Z-A)"},
		{Value: NewSort(SortByName, Asc), Label: "Name (A-Z)"},
		{Value: NewSort(SortByName, Desc), Label: "Name (Z-A)"},
		{Value: NewSort(SortByAge, Asc), Label: "Age (Youngest)"},
		{Value: NewSort(SortByAge, Desc), Label: "Age (Oldest)"},
	}
}

// SearchQuery son los parámetros de GET /dogs/search.
// Breeds/ZipCodes se mandan como parámetros repetidos en el orden dado.
type SearchQuery struct {
	Breeds   []string
	ZipCodes []string
	AgeMin   *int
	AgeMax   *int
	Size     int
	From     string
	Sort     Sort
}

// WithDefaults garantiza size y sort presentes.
func (q SearchQuery) WithDefaults() SearchQuery {
	if q.Size <= 0 {
		q.Size = DefaultPageSize
	}
	if strings.TrimSpace(string(q.Sort)) == "" {
		q.Sort = DefaultSort
	}
	return q
}

// SearchResult: ids de la página, total global y cursores opacos.
// Next/Prev vacíos significan "no hay tal página".
type SearchResult struct {
	ResultIDs []string `json:"resultIds"`
	Total     int      `json:"total"`
	Next      string   `json:"next,omitempty"`
	Prev      string   `json:"prev,omitempty"`
}

// SortBreeds devuelve una copia ordenada (el servicio no garantiza orden).
func SortBreeds(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
