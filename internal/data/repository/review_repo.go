package repository

import (
	"context"
	"fmt"

	"artdb/internal/data/entity"
	"artdb/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	// FindByIDAndTitle intersects on the parent foreign key: a review that
	// exists but hangs off a different title resolves to nothing.
	FindByIDAndTitle(ctx context.Context, id, titleID uuid.UUID) (*entity.Review, error)
	FindByTitleID(ctx context.Context, titleID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	CountByTitleID(ctx context.Context, titleID uuid.UUID) (int64, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Aggregations feeding the computed title rating
	AverageByTitleID(ctx context.Context, titleID uuid.UUID) (*float64, error)
	AverageByTitleIDs(ctx context.Context, titleIDs []uuid.UUID) (map[uuid.UUID]float64, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, title_id, author_id, text, score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.TitleID,
		review.AuthorID,
		review.Text,
		review.Score,
		review.CreatedAt,
	)

	if err != nil {
		if !database.IsUniqueViolation(err) {
			r.log.Error("Failed to create review",
				zap.Error(err),
				zap.String("title_id", review.TitleID.String()),
				zap.String("author_id", review.AuthorID.String()),
			)
		}
		return fmt.Errorf("create review for title %s by author %s: %w",
			review.TitleID.String(), review.AuthorID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByIDAndTitle(ctx context.Context, id, titleID uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, title_id, author_id, text, score, created_at
		FROM reviews
		WHERE id = $1 AND title_id = $2
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, id, titleID).Scan(
		&review.ID,
		&review.TitleID,
		&review.AuthorID,
		&review.Text,
		&review.Score,
		&review.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID and title",
			zap.Error(err),
			zap.String("review_id", id.String()),
			zap.String("title_id", titleID.String()),
		)
		return nil, fmt.Errorf("find review %s under title %s: %w", id.String(), titleID.String(), err)
	}

	return &review, nil
}

func (r *reviewRepository) FindByTitleID(ctx context.Context, titleID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT id, title_id, author_id, text, score, created_at
		FROM reviews
		WHERE title_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, titleID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by title ID",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
		)
		return nil, fmt.Errorf("find reviews by title ID %s: %w", titleID.String(), err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.TitleID,
			&review.AuthorID,
			&review.Text,
			&review.Score,
			&review.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews rows: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) CountByTitleID(ctx context.Context, titleID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE title_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, titleID).Scan(&count); err != nil {
		r.log.Error("Failed to count reviews by title ID",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
		)
		return 0, fmt.Errorf("count reviews by title ID %s: %w", titleID.String(), err)
	}

	return count, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET text = $2, score = $3
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		review.ID,
		review.Text,
		review.Score,
	)

	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
		)
		return fmt.Errorf("update review %s: %w", review.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", review.ID.String())
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", id.String())
	}

	r.log.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}

// AverageByTitleID returns nil when the title has no reviews yet.
func (r *reviewRepository) AverageByTitleID(ctx context.Context, titleID uuid.UUID) (*float64, error) {
	query := `SELECT AVG(score) FROM reviews WHERE title_id = $1`

	var avg *float64
	if err := r.db.QueryRow(ctx, query, titleID).Scan(&avg); err != nil {
		r.log.Error("Failed to get title average score",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
		)
		return nil, fmt.Errorf("average score for title %s: %w", titleID.String(), err)
	}

	return avg, nil
}

func (r *reviewRepository) AverageByTitleIDs(ctx context.Context, titleIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	averages := make(map[uuid.UUID]float64, len(titleIDs))
	if len(titleIDs) == 0 {
		return averages, nil
	}

	query := `
		SELECT title_id, AVG(score)
		FROM reviews
		WHERE title_id = ANY($1)
		GROUP BY title_id
	`

	rows, err := r.db.Query(ctx, query, titleIDs)
	if err != nil {
		r.log.Error("Failed to get average scores", zap.Error(err))
		return nil, fmt.Errorf("average scores for titles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var titleID uuid.UUID
		var avg float64
		if err := rows.Scan(&titleID, &avg); err != nil {
			r.log.Error("Failed to scan average row", zap.Error(err))
			return nil, fmt.Errorf("scan average row: %w", err)
		}
		averages[titleID] = avg
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate averages rows: %w", err)
	}

	return averages, nil
}
