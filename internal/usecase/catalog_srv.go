package usecase

import (
	"context"
	"fmt"
	"time"

	"artdb/internal/data/entity"
	"artdb/internal/data/repository"
	"artdb/internal/dto/request"
	"artdb/pkg/apperr"
	"artdb/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService manages the two classification dictionaries, categories and
// genres. Both are addressed by slug.
type CatalogService interface {
	ListCategories(ctx context.Context, search string, page request.Pagination) ([]*entity.Category, int64, error)
	CreateCategory(ctx context.Context, req request.CreateCategoryRequest) (*entity.Category, error)
	DeleteCategory(ctx context.Context, slug string) error

	ListGenres(ctx context.Context, search string, page request.Pagination) ([]*entity.Genre, int64, error)
	CreateGenre(ctx context.Context, req request.CreateGenreRequest) (*entity.Genre, error)
	DeleteGenre(ctx context.Context, slug string) error
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("usecase", "catalog")),
	}
}

func (s *catalogService) ListCategories(ctx context.Context, search string, page request.Pagination) ([]*entity.Category, int64, error) {
	categories, err := s.repo.Category.FindAll(ctx, search, page.PerPage, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}

	count, err := s.repo.Category.CountAll(ctx, search)
	if err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	return categories, count, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, req request.CreateCategoryRequest) (*entity.Category, error) {
	category := &entity.Category{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := s.repo.Category.Create(ctx, category); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("category slug already exists")
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.Info("Category created", zap.String("slug", category.Slug))
	return category, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, slug string) error {
	deleted, err := s.repo.Category.DeleteBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if !deleted {
		return apperr.NotFound("category not found")
	}

	s.log.Info("Category deleted", zap.String("slug", slug))
	return nil
}

func (s *catalogService) ListGenres(ctx context.Context, search string, page request.Pagination) ([]*entity.Genre, int64, error) {
	genres, err := s.repo.Genre.FindAll(ctx, search, page.PerPage, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list genres: %w", err)
	}

	count, err := s.repo.Genre.CountAll(ctx, search)
	if err != nil {
		return nil, 0, fmt.Errorf("count genres: %w", err)
	}

	return genres, count, nil
}

func (s *catalogService) CreateGenre(ctx context.Context, req request.CreateGenreRequest) (*entity.Genre, error) {
	genre := &entity.Genre{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := s.repo.Genre.Create(ctx, genre); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("genre slug already exists")
		}
		return nil, fmt.Errorf("create genre: %w", err)
	}

	s.log.Info("Genre created", zap.String("slug", genre.Slug))
	return genre, nil
}

func (s *catalogService) DeleteGenre(ctx context.Context, slug string) error {
	deleted, err := s.repo.Genre.DeleteBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("delete genre: %w", err)
	}
	if !deleted {
		return apperr.NotFound("genre not found")
	}

	s.log.Info("Genre deleted", zap.String("slug", slug))
	return nil
}
