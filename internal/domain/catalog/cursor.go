package catalog

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrMalformedCursor   = errors.New("malformed page cursor")
	ErrCursorMissingFrom = errors.New("page cursor has no from parameter")
)

// FromCursor extrae el valor de "from" de un cursor de paginación.
//
// Gramática aceptada: cursor = [path] "?" query. Ejemplo que devuelve el
// servicio: "/dogs/search?size=25&from=25&sort=breed:asc". El resto del
// cursor no se interpreta.
func FromCursor(cursor string) (string, error) {
	cursor = strings.TrimSpace(cursor)
	_, rawQuery, ok := strings.Cut(cursor, "?")
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMalformedCursor, cursor)
	}

	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCursor, err)
	}

	from := values.Get("from")
	if from == "" {
		return "", ErrCursorMissingFrom
	}
	return from, nil
}
