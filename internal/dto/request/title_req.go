package request

// CreateTitleRequest references category and genres by slug. Slugs are
// resolved server-side; an unknown slug fails the whole request.
type CreateTitleRequest struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        int      `json:"year" validate:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category" validate:"omitempty,slug"`
	Genres      []string `json:"genre" validate:"omitempty,dive,slug"`
}

// UpdateTitleRequest patches a title. A non-nil Genres replaces the whole
// genre set.
type UpdateTitleRequest struct {
	Name        *string   `json:"name" validate:"omitempty,max=256"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category" validate:"omitempty,slug"`
	Genres      *[]string `json:"genre" validate:"omitempty,dive,slug"`
}

// TitleFilterRequest carries the list endpoint query parameters.
type TitleFilterRequest struct {
	Category string
	Genre    string
	Name     string
	Year     *int
}
