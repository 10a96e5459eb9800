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

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindBySlug(ctx context.Context, slug string) (*entity.Category, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Category, error)
	FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Category, error)
	CountAll(ctx context.Context, search string) (int64, error)
	// DeleteBySlug removes the category; referencing titles keep existing
	// with a null category (enforced by the FK's ON DELETE SET NULL).
	DeleteBySlug(ctx context.Context, slug string) (bool, error)
}

type categoryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCategoryRepository(db database.PgxIface, log *zap.Logger) CategoryRepository {
	return &categoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "category")),
	}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	query := `INSERT INTO categories (id, name, slug, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query,
		category.ID,
		category.Name,
		category.Slug,
		category.CreatedAt,
	)

	if err != nil {
		if !database.IsUniqueViolation(err) {
			r.log.Error("Failed to create category",
				zap.Error(err),
				zap.String("slug", category.Slug),
			)
		}
		return fmt.Errorf("create category %s: %w", category.Slug, err)
	}

	return nil
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	query := `SELECT id, name, slug, created_at FROM categories WHERE slug = $1`

	var category entity.Category
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find category by slug",
			zap.Error(err),
			zap.String("slug", slug),
		)
		return nil, fmt.Errorf("find category by slug %s: %w", slug, err)
	}

	return &category, nil
}

func (r *categoryRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Category, error) {
	categories := make(map[uuid.UUID]*entity.Category, len(ids))
	if len(ids) == 0 {
		return categories, nil
	}

	query := `SELECT id, name, slug, created_at FROM categories WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find categories by IDs", zap.Error(err))
		return nil, fmt.Errorf("find categories by IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category entity.Category
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan category row", zap.Error(err))
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories[category.ID] = &category
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories rows: %w", err)
	}

	return categories, nil
}

func (r *categoryRepository) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Category, error) {
	query := `
		SELECT id, name, slug, created_at
		FROM categories
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY slug
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		r.log.Error("Failed to list categories",
			zap.Error(err),
			zap.String("search", search),
		)
		return nil, fmt.Errorf("find all categories: %w", err)
	}
	defer rows.Close()

	var categories []*entity.Category
	for rows.Next() {
		var category entity.Category
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan category row", zap.Error(err))
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, &category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories rows: %w", err)
	}

	return categories, nil
}

func (r *categoryRepository) CountAll(ctx context.Context, search string) (int64, error) {
	query := `SELECT COUNT(*) FROM categories WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`

	var count int64
	if err := r.db.QueryRow(ctx, query, search).Scan(&count); err != nil {
		r.log.Error("Failed to count categories", zap.Error(err))
		return 0, fmt.Errorf("count all categories: %w", err)
	}

	return count, nil
}

func (r *categoryRepository) DeleteBySlug(ctx context.Context, slug string) (bool, error) {
	query := `DELETE FROM categories WHERE slug = $1`

	result, err := r.db.Exec(ctx, query, slug)
	if err != nil {
		r.log.Error("Failed to delete category",
			zap.Error(err),
			zap.String("slug", slug),
		)
		return false, fmt.Errorf("delete category %s: %w", slug, err)
	}

	if result.RowsAffected() == 0 {
		return false, nil
	}

	r.log.Info("Category deleted", zap.String("slug", slug))
	return true, nil
}
