package fetchapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"dog-match/internal/domain/match"
	"dog-match/internal/platform/httpclient"
	ports "dog-match/internal/ports/catalog"
)

const matchPath = "/dogs/match"

// MatchClient implementa ports.Matcher contra POST /dogs/match.
type MatchClient struct {
	http *httpclient.Client
}

var _ ports.Matcher = (*MatchClient)(nil)

func NewMatchClient(c *httpclient.Client) *MatchClient {
	return &MatchClient{http: c}
}

// ComputeMatch devuelve el id elegido por el servicio. No se asume ninguna
// relación entre los favoritos y el elegido más allá de "es uno válido".
func (c *MatchClient) ComputeMatch(ctx context.Context, favoriteIDs []string) (string, error) {
	if len(favoriteIDs) == 0 {
		return "", match.ErrNoFavorites
	}

	var out match.Response
	if err := c.http.DoJSON(ctx, http.MethodPost, matchPath, nil, favoriteIDs, &out); err != nil {
		return "", fmt.Errorf("%w: %w", match.ErrRequestFailed, err)
	}

	id := strings.TrimSpace(out.Match)
	if id == "" {
		return "", fmt.Errorf("%w: response missing match", match.ErrRequestFailed)
	}
	return id, nil
}
