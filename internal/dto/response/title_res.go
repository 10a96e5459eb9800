package response

import "artdb/internal/data/entity"

// TitleResponse carries the computed rating: nil until the first review
// lands, so clients can tell "unrated" apart from a zero score.
type TitleResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Description string            `json:"description"`
	Rating      *float64          `json:"rating"`
	Category    *CategoryResponse `json:"category"`
	Genres      []GenreResponse   `json:"genre"`
}

func ToTitleResponse(title *entity.Title, category *entity.Category, genres []*entity.Genre, rating *float64) TitleResponse {
	out := TitleResponse{
		ID:          title.ID.String(),
		Name:        title.Name,
		Year:        title.Year,
		Description: deref(title.Description),
		Rating:      rating,
		Genres:      ToGenreResponses(genres),
	}

	if category != nil {
		c := ToCategoryResponse(category)
		out.Category = &c
	}

	return out
}
