package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSort(t *testing.T) {
	for _, opt := range SortOptions() {
		got, err := ParseSort(string(opt.Value))
		require.NoError(t, err, opt.Value)
		assert.Equal(t, opt.Value, got)
	}

	for _, bad := range []string{"", "breed", "zip:asc", "name:up", "age:"} {
		_, err := ParseSort(bad)
		assert.ErrorIs(t, err, ErrInvalidSort, bad)
	}
}

func TestSearchQuery_WithDefaults(t *testing.T) {
	q := SearchQuery{}.WithDefaults()
	assert.Equal(t, DefaultPageSize, q.Size)
	assert.Equal(t, Sort("breed:asc"), q.Sort)

	q = SearchQuery{Size: 10, Sort: "age:desc"}.WithDefaults()
	assert.Equal(t, 10, q.Size)
	assert.Equal(t, Sort("age:desc"), q.Sort)
}

func TestDog_AgeLabel(t *testing.T) {
	assert.Equal(t, "1 year old", Dog{Age: 1}.AgeLabel())
	assert.Equal(t, "0 years old", Dog{Age: 0}.AgeLabel())
	assert.Equal(t, "7 years old", Dog{Age: 7}.AgeLabel())
}

func TestSortBreeds_DoesNotMutateInput(t *testing.T) {
	in := []string{"Pug", "Akita", "Boxer"}
	out := SortBreeds(in)
	assert.Equal(t, []string{"Akita", "Boxer", "Pug"}, out)
	assert.Equal(t, []string{"Pug", "Akita", "Boxer"}, in)
}

func TestFromCursor(t *testing.T) {
	from, err := FromCursor("/dogs/search?size=25&from=25&sort=breed:asc")
	require.NoError(t, err)
	assert.Equal(t, "25", from)

	from, err = FromCursor("?from=50")
	require.NoError(t, err)
	assert.Equal(t, "50", from)

	_, err = FromCursor("/dogs/search?size=25&sort=breed:asc")
	assert.ErrorIs(t, err, ErrCursorMissingFrom)

	_, err = FromCursor("from=25")
	assert.ErrorIs(t, err, ErrMalformedCursor)

	_, err = FromCursor("/dogs/search?from=%zz")
	assert.ErrorIs(t, err, ErrMalformedCursor)
}
