package response

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestPaginatedLinksKeepFilters(t *testing.T) {
	u := listURL(t, "/api/v1/titles?page=2&per_page=10&genre=sci-fi&year=2021")

	out := NewPaginated(u, 2, 10, 35, []string{"a"})

	require.NotNil(t, out.Next)
	assert.Equal(t, "/api/v1/titles?genre=sci-fi&page=3&per_page=10&year=2021", *out.Next)
	require.NotNil(t, out.Previous)
	assert.Equal(t, "/api/v1/titles?genre=sci-fi&page=1&per_page=10&year=2021", *out.Previous)
}

func TestPaginatedLinkBoundaries(t *testing.T) {
	u := listURL(t, "/api/v1/categories?search=mov")

	first := NewPaginated(u, 1, 10, 15, []string{"a"})
	require.NotNil(t, first.Next)
	assert.Contains(t, *first.Next, "search=mov")
	assert.Nil(t, first.Previous)

	last := NewPaginated(u, 2, 10, 15, []string{"a"})
	assert.Nil(t, last.Next)
	require.NotNil(t, last.Previous)

	single := NewPaginated(u, 1, 10, 5, []string{"a"})
	assert.Nil(t, single.Next)
	assert.Nil(t, single.Previous)
}

func TestPaginatedEmptyResults(t *testing.T) {
	out := NewPaginated(listURL(t, "/api/v1/genres"), 1, 10, 0, []string(nil))

	assert.NotNil(t, out.Results)
	assert.Len(t, out.Results, 0)
	assert.Nil(t, out.Next)
	assert.Nil(t, out.Previous)
}
