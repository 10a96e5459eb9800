package request

// CreateCategoryRequest and CreateGenreRequest share the same shape but are
// kept separate so validation messages name the right resource.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

type CreateGenreRequest struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}
