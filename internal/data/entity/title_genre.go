package entity

import "github.com/google/uuid"

// TitleGenre is the bridge row for the title/genre many-to-many relation.
type TitleGenre struct {
	BaseSimple
	TitleID uuid.UUID `db:"title_id"`
	GenreID uuid.UUID `db:"genre_id"`
}
