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

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	FindByIDAndReview(ctx context.Context, id, reviewID uuid.UUID) (*entity.Comment, error)
	FindByReviewID(ctx context.Context, reviewID uuid.UUID, limit, offset int) ([]*entity.Comment, error)
	CountByReviewID(ctx context.Context, reviewID uuid.UUID) (int64, error)
	Update(ctx context.Context, comment *entity.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type commentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCommentRepository(db database.PgxIface, log *zap.Logger) CommentRepository {
	return &commentRepository{
		db:  db,
		log: log.With(zap.String("repository", "comment")),
	}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	query := `
		INSERT INTO comments (id, review_id, author_id, text, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		comment.ID,
		comment.ReviewID,
		comment.AuthorID,
		comment.Text,
		comment.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create comment",
			zap.Error(err),
			zap.String("review_id", comment.ReviewID.String()),
			zap.String("author_id", comment.AuthorID.String()),
		)
		return fmt.Errorf("create comment for review %s: %w", comment.ReviewID.String(), err)
	}

	return nil
}

func (r *commentRepository) FindByIDAndReview(ctx context.Context, id, reviewID uuid.UUID) (*entity.Comment, error) {
	query := `
		SELECT id, review_id, author_id, text, created_at
		FROM comments
		WHERE id = $1 AND review_id = $2
	`

	var comment entity.Comment
	err := r.db.QueryRow(ctx, query, id, reviewID).Scan(
		&comment.ID,
		&comment.ReviewID,
		&comment.AuthorID,
		&comment.Text,
		&comment.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find comment by ID and review",
			zap.Error(err),
			zap.String("comment_id", id.String()),
			zap.String("review_id", reviewID.String()),
		)
		return nil, fmt.Errorf("find comment %s under review %s: %w", id.String(), reviewID.String(), err)
	}

	return &comment, nil
}

func (r *commentRepository) FindByReviewID(ctx context.Context, reviewID uuid.UUID, limit, offset int) ([]*entity.Comment, error) {
	query := `
		SELECT id, review_id, author_id, text, created_at
		FROM comments
		WHERE review_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, reviewID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find comments by review ID",
			zap.Error(err),
			zap.String("review_id", reviewID.String()),
		)
		return nil, fmt.Errorf("find comments by review ID %s: %w", reviewID.String(), err)
	}
	defer rows.Close()

	var comments []*entity.Comment
	for rows.Next() {
		var comment entity.Comment
		err := rows.Scan(
			&comment.ID,
			&comment.ReviewID,
			&comment.AuthorID,
			&comment.Text,
			&comment.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan comment row", zap.Error(err))
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments rows: %w", err)
	}

	return comments, nil
}

func (r *commentRepository) CountByReviewID(ctx context.Context, reviewID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM comments WHERE review_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, reviewID).Scan(&count); err != nil {
		r.log.Error("Failed to count comments by review ID",
			zap.Error(err),
			zap.String("review_id", reviewID.String()),
		)
		return 0, fmt.Errorf("count comments by review ID %s: %w", reviewID.String(), err)
	}

	return count, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *entity.Comment) error {
	query := `UPDATE comments SET text = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, comment.ID, comment.Text)
	if err != nil {
		r.log.Error("Failed to update comment",
			zap.Error(err),
			zap.String("comment_id", comment.ID.String()),
		)
		return fmt.Errorf("update comment %s: %w", comment.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("comment %s not found", comment.ID.String())
	}

	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM comments WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete comment",
			zap.Error(err),
			zap.String("comment_id", id.String()),
		)
		return fmt.Errorf("delete comment %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("comment %s not found", id.String())
	}

	r.log.Info("Comment deleted", zap.String("comment_id", id.String()))
	return nil
}
