package repository

import (
	"context"
	"fmt"

	"artdb/internal/data/entity"
	"artdb/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GenreRepository interface {
	Create(ctx context.Context, genre *entity.Genre) error
	FindBySlugs(ctx context.Context, slugs []string) ([]*entity.Genre, error)
	FindByTitleID(ctx context.Context, titleID uuid.UUID) ([]*entity.Genre, error)
	FindByTitleIDs(ctx context.Context, titleIDs []uuid.UUID) (map[uuid.UUID][]*entity.Genre, error)
	FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Genre, error)
	CountAll(ctx context.Context, search string) (int64, error)
	DeleteBySlug(ctx context.Context, slug string) (bool, error)
}

type genreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGenreRepository(db database.PgxIface, log *zap.Logger) GenreRepository {
	return &genreRepository{
		db:  db,
		log: log.With(zap.String("repository", "genre")),
	}
}

func (r *genreRepository) Create(ctx context.Context, genre *entity.Genre) error {
	query := `INSERT INTO genres (id, name, slug, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query,
		genre.ID,
		genre.Name,
		genre.Slug,
		genre.CreatedAt,
	)

	if err != nil {
		if !database.IsUniqueViolation(err) {
			r.log.Error("Failed to create genre",
				zap.Error(err),
				zap.String("slug", genre.Slug),
			)
		}
		return fmt.Errorf("create genre %s: %w", genre.Slug, err)
	}

	return nil
}

func (r *genreRepository) FindBySlugs(ctx context.Context, slugs []string) ([]*entity.Genre, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	query := `SELECT id, name, slug, created_at FROM genres WHERE slug = ANY($1) ORDER BY slug`

	rows, err := r.db.Query(ctx, query, slugs)
	if err != nil {
		r.log.Error("Failed to find genres by slugs", zap.Error(err))
		return nil, fmt.Errorf("find genres by slugs: %w", err)
	}
	defer rows.Close()

	var genres []*entity.Genre
	for rows.Next() {
		var genre entity.Genre
		err := rows.Scan(
			&genre.ID,
			&genre.Name,
			&genre.Slug,
			&genre.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, &genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genres rows: %w", err)
	}

	return genres, nil
}

func (r *genreRepository) FindByTitleID(ctx context.Context, titleID uuid.UUID) ([]*entity.Genre, error) {
	query := `
		SELECT g.id, g.name, g.slug, g.created_at
		FROM genres g
		INNER JOIN title_genres tg ON g.id = tg.genre_id
		WHERE tg.title_id = $1
		ORDER BY g.slug
	`

	rows, err := r.db.Query(ctx, query, titleID)
	if err != nil {
		r.log.Error("Failed to find genres by title ID",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
		)
		return nil, fmt.Errorf("find genres by title ID %s: %w", titleID.String(), err)
	}
	defer rows.Close()

	var genres []*entity.Genre
	for rows.Next() {
		var genre entity.Genre
		err := rows.Scan(
			&genre.ID,
			&genre.Name,
			&genre.Slug,
			&genre.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, &genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genres rows: %w", err)
	}

	return genres, nil
}

func (r *genreRepository) FindByTitleIDs(ctx context.Context, titleIDs []uuid.UUID) (map[uuid.UUID][]*entity.Genre, error) {
	genresByTitle := make(map[uuid.UUID][]*entity.Genre, len(titleIDs))
	if len(titleIDs) == 0 {
		return genresByTitle, nil
	}

	query := `
		SELECT tg.title_id, g.id, g.name, g.slug, g.created_at
		FROM genres g
		INNER JOIN title_genres tg ON g.id = tg.genre_id
		WHERE tg.title_id = ANY($1)
		ORDER BY g.slug
	`

	rows, err := r.db.Query(ctx, query, titleIDs)
	if err != nil {
		r.log.Error("Failed to find genres by title IDs", zap.Error(err))
		return nil, fmt.Errorf("find genres by title IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var titleID uuid.UUID
		var genre entity.Genre
		err := rows.Scan(
			&titleID,
			&genre.ID,
			&genre.Name,
			&genre.Slug,
			&genre.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genresByTitle[titleID] = append(genresByTitle[titleID], &genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genres rows: %w", err)
	}

	return genresByTitle, nil
}

func (r *genreRepository) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Genre, error) {
	query := `
		SELECT id, name, slug, created_at
		FROM genres
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY slug
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		r.log.Error("Failed to list genres",
			zap.Error(err),
			zap.String("search", search),
		)
		return nil, fmt.Errorf("find all genres: %w", err)
	}
	defer rows.Close()

	var genres []*entity.Genre
	for rows.Next() {
		var genre entity.Genre
		err := rows.Scan(
			&genre.ID,
			&genre.Name,
			&genre.Slug,
			&genre.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, &genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genres rows: %w", err)
	}

	return genres, nil
}

func (r *genreRepository) CountAll(ctx context.Context, search string) (int64, error) {
	query := `SELECT COUNT(*) FROM genres WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`

	var count int64
	if err := r.db.QueryRow(ctx, query, search).Scan(&count); err != nil {
		r.log.Error("Failed to count genres", zap.Error(err))
		return 0, fmt.Errorf("count all genres: %w", err)
	}

	return count, nil
}

func (r *genreRepository) DeleteBySlug(ctx context.Context, slug string) (bool, error) {
	query := `DELETE FROM genres WHERE slug = $1`

	result, err := r.db.Exec(ctx, query, slug)
	if err != nil {
		r.log.Error("Failed to delete genre",
			zap.Error(err),
			zap.String("slug", slug),
		)
		return false, fmt.Errorf("delete genre %s: %w", slug, err)
	}

	if result.RowsAffected() == 0 {
		return false, nil
	}

	r.log.Info("Genre deleted", zap.String("slug", slug))
	return true, nil
}
