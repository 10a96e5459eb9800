package usecase

import (
	"context"
	"fmt"
	"time"

	"artdb/internal/data/entity"
	"artdb/internal/data/repository"
	"artdb/internal/dto/request"
	"artdb/internal/dto/response"
	"artdb/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TitleService assembles the full title view: the row itself plus its
// category, genre set and the rating computed from reviews.
type TitleService interface {
	List(ctx context.Context, filter request.TitleFilterRequest, page request.Pagination) ([]response.TitleResponse, int64, error)
	Create(ctx context.Context, req request.CreateTitleRequest) (*response.TitleResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*response.TitleResponse, error)
	Update(ctx context.Context, id uuid.UUID, req request.UpdateTitleRequest) (*response.TitleResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type titleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTitleService(repo *repository.Repository, log *zap.Logger) TitleService {
	return &titleService{
		repo: repo,
		log:  log.With(zap.String("usecase", "title")),
	}
}

func (s *titleService) List(ctx context.Context, filter request.TitleFilterRequest, page request.Pagination) ([]response.TitleResponse, int64, error) {
	repoFilter := repository.TitleFilter{
		CategorySlug: filter.Category,
		GenreSlug:    filter.Genre,
		Name:         filter.Name,
		Year:         filter.Year,
	}

	titles, err := s.repo.Title.FindAll(ctx, repoFilter, page.PerPage, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list titles: %w", err)
	}

	count, err := s.repo.Title.CountAll(ctx, repoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("count titles: %w", err)
	}

	results, err := s.assemble(ctx, titles)
	if err != nil {
		return nil, 0, err
	}

	return results, count, nil
}

// assemble hydrates a page of titles with three batch lookups instead of
// per-row queries.
func (s *titleService) assemble(ctx context.Context, titles []*entity.Title) ([]response.TitleResponse, error) {
	ids := make([]uuid.UUID, 0, len(titles))
	categoryIDs := make([]uuid.UUID, 0, len(titles))
	for _, title := range titles {
		ids = append(ids, title.ID)
		if title.CategoryID != nil {
			categoryIDs = append(categoryIDs, *title.CategoryID)
		}
	}

	categories, err := s.repo.Category.FindByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("load title categories: %w", err)
	}

	genres, err := s.repo.Genre.FindByTitleIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load title genres: %w", err)
	}

	ratings, err := s.repo.Review.AverageByTitleIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load title ratings: %w", err)
	}

	results := make([]response.TitleResponse, 0, len(titles))
	for _, title := range titles {
		var category *entity.Category
		if title.CategoryID != nil {
			category = categories[*title.CategoryID]
		}

		var rating *float64
		if avg, ok := ratings[title.ID]; ok {
			rating = &avg
		}

		results = append(results, response.ToTitleResponse(title, category, genres[title.ID], rating))
	}

	return results, nil
}

func (s *titleService) Create(ctx context.Context, req request.CreateTitleRequest) (*response.TitleResponse, error) {
	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(ctx, req.Genres)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	title := &entity.Title{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Year:        req.Year,
		Description: optional(req.Description),
	}
	if category != nil {
		title.CategoryID = &category.ID
	}

	if err := s.repo.Title.Create(ctx, title); err != nil {
		return nil, fmt.Errorf("create title: %w", err)
	}

	if err := s.linkGenres(ctx, title.ID, genres); err != nil {
		return nil, err
	}

	s.log.Info("Title created",
		zap.String("title_id", title.ID.String()),
		zap.String("name", title.Name),
	)

	out := response.ToTitleResponse(title, category, genres, nil)
	return &out, nil
}

func (s *titleService) GetByID(ctx context.Context, id uuid.UUID) (*response.TitleResponse, error) {
	title, err := s.findTitle(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.assembleOne(ctx, title)
}

func (s *titleService) Update(ctx context.Context, id uuid.UUID, req request.UpdateTitleRequest) (*response.TitleResponse, error) {
	title, err := s.findTitle(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		if *req.Category == "" {
			title.CategoryID = nil
		} else {
			category, err := s.resolveCategory(ctx, *req.Category)
			if err != nil {
				return nil, err
			}
			title.CategoryID = &category.ID
		}
	}

	title.UpdatedAt = time.Now()
	if err := s.repo.Title.Update(ctx, title); err != nil {
		return nil, fmt.Errorf("update title: %w", err)
	}

	// A genre list in the request replaces the whole set.
	if req.Genres != nil {
		genres, err := s.resolveGenres(ctx, *req.Genres)
		if err != nil {
			return nil, err
		}
		if err := s.repo.TitleGenre.DeleteByTitleID(ctx, title.ID); err != nil {
			return nil, fmt.Errorf("unlink title genres: %w", err)
		}
		if err := s.linkGenres(ctx, title.ID, genres); err != nil {
			return nil, err
		}
	}

	return s.assembleOne(ctx, title)
}

func (s *titleService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findTitle(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Title.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete title: %w", err)
	}

	return nil
}

func (s *titleService) findTitle(ctx context.Context, id uuid.UUID) (*entity.Title, error) {
	title, err := s.repo.Title.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find title: %w", err)
	}
	if title == nil {
		return nil, apperr.NotFound("title not found")
	}
	return title, nil
}

func (s *titleService) assembleOne(ctx context.Context, title *entity.Title) (*response.TitleResponse, error) {
	var category *entity.Category
	if title.CategoryID != nil {
		categories, err := s.repo.Category.FindByIDs(ctx, []uuid.UUID{*title.CategoryID})
		if err != nil {
			return nil, fmt.Errorf("load title category: %w", err)
		}
		category = categories[*title.CategoryID]
	}

	genres, err := s.repo.Genre.FindByTitleID(ctx, title.ID)
	if err != nil {
		return nil, fmt.Errorf("load title genres: %w", err)
	}

	rating, err := s.repo.Review.AverageByTitleID(ctx, title.ID)
	if err != nil {
		return nil, fmt.Errorf("load title rating: %w", err)
	}

	out := response.ToTitleResponse(title, category, genres, rating)
	return &out, nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*entity.Category, error) {
	if slug == "" {
		return nil, nil
	}

	category, err := s.repo.Category.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("resolve category: %w", err)
	}
	if category == nil {
		return nil, apperr.Invalid(fmt.Sprintf("unknown category slug %q", slug))
	}
	return category, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]*entity.Genre, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	genres, err := s.repo.Genre.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, fmt.Errorf("resolve genres: %w", err)
	}

	found := make(map[string]bool, len(genres))
	for _, genre := range genres {
		found[genre.Slug] = true
	}
	for _, slug := range slugs {
		if !found[slug] {
			return nil, apperr.Invalid(fmt.Sprintf("unknown genre slug %q", slug))
		}
	}

	return genres, nil
}

func (s *titleService) linkGenres(ctx context.Context, titleID uuid.UUID, genres []*entity.Genre) error {
	if len(genres) == 0 {
		return nil
	}

	now := time.Now()
	links := make([]*entity.TitleGenre, 0, len(genres))
	for _, genre := range genres {
		links = append(links, &entity.TitleGenre{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			TitleID: titleID,
			GenreID: genre.ID,
		})
	}

	if err := s.repo.TitleGenre.CreateBatch(ctx, links); err != nil {
		return fmt.Errorf("link title genres: %w", err)
	}
	return nil
}
