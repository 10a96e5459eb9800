package response

import (
	"net/url"
	"strconv"
)

// Paginated is the list envelope: total row count plus absolute links to the
// neighboring pages, nil when there is no such page.
type Paginated[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// pageLink rewrites only the page parameters so active filters survive
// navigation.
func pageLink(u *url.URL, page, perPage int) *string {
	query := u.Query()
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))
	link := u.Path + "?" + query.Encode()
	return &link
}

// NewPaginated wraps results with navigation links built off the request URL.
func NewPaginated[T any](u *url.URL, page, perPage int, count int64, results []T) Paginated[T] {
	if results == nil {
		results = []T{}
	}

	out := Paginated[T]{
		Count:   count,
		Results: results,
	}

	if int64(page*perPage) < count {
		out.Next = pageLink(u, page+1, perPage)
	}
	if page > 1 {
		out.Previous = pageLink(u, page-1, perPage)
	}

	return out
}
