package catalog

import (
	"context"

	domain "dog-match/internal/domain/catalog"
)

// BreedLister alcanza para sondear si la sesión sigue viva.
type BreedLister interface {
	ListBreeds(ctx context.Context) ([]string, error)
}

type Catalog interface {
	BreedLister
	Search(ctx context.Context, q domain.SearchQuery) (domain.SearchResult, error)
	ResolveDogs(ctx context.Context, ids []string) ([]domain.Dog, error)
}

// Matcher elige un perro entre los favoritos. El criterio es del servicio remoto.
type Matcher interface {
	ComputeMatch(ctx context.Context, favoriteIDs []string) (string, error)
}
