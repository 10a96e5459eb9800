package response

import "artdb/internal/data/entity"

type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func ToCategoryResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{Name: category.Name, Slug: category.Slug}
}

func ToCategoryResponses(categories []*entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, ToCategoryResponse(category))
	}
	return out
}

func ToGenreResponse(genre *entity.Genre) GenreResponse {
	return GenreResponse{Name: genre.Name, Slug: genre.Slug}
}

func ToGenreResponses(genres []*entity.Genre) []GenreResponse {
	out := make([]GenreResponse, 0, len(genres))
	for _, genre := range genres {
		out = append(out, ToGenreResponse(genre))
	}
	return out
}
