package match

import "errors"

var (
	ErrRequestFailed = errors.New("match request failed")
	// ErrNoFavorites: no se llama al servicio con favoritos vacíos.
	ErrNoFavorites = errors.New("no favorites selected")
	// ErrEmptyResolution: el id elegido no resolvió a ningún perro.
	ErrEmptyResolution = errors.New("match did not resolve to a dog")
)

// Response es el cuerpo de POST /dogs/match.
type Response struct {
	Match string `json:"match"`
}
