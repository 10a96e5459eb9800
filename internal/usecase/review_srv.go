package usecase

import (
	"context"
	"fmt"
	"time"

	"artdb/internal/authz"
	"artdb/internal/data/entity"
	"artdb/internal/data/repository"
	"artdb/internal/dto/request"
	"artdb/internal/dto/response"
	"artdb/pkg/apperr"
	"artdb/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReviewService handles reviews nested under titles. Every lookup is scoped
// to the title from the URL, so a review reached through the wrong title is
// a miss even if the review ID exists.
type ReviewService interface {
	List(ctx context.Context, titleID uuid.UUID, page request.Pagination) ([]response.ReviewResponse, int64, error)
	Create(ctx context.Context, principal authz.Principal, titleID uuid.UUID, req request.CreateReviewRequest) (*response.ReviewResponse, error)
	Get(ctx context.Context, titleID, reviewID uuid.UUID) (*response.ReviewResponse, error)
	Update(ctx context.Context, principal authz.Principal, titleID, reviewID uuid.UUID, req request.UpdateReviewRequest) (*response.ReviewResponse, error)
	Delete(ctx context.Context, principal authz.Principal, titleID, reviewID uuid.UUID) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("usecase", "review")),
	}
}

func (s *reviewService) List(ctx context.Context, titleID uuid.UUID, page request.Pagination) ([]response.ReviewResponse, int64, error) {
	if err := s.ensureTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}

	reviews, err := s.repo.Review.FindByTitleID(ctx, titleID, page.PerPage, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}

	count, err := s.repo.Review.CountByTitleID(ctx, titleID)
	if err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	authorIDs := make([]uuid.UUID, 0, len(reviews))
	for _, review := range reviews {
		authorIDs = append(authorIDs, review.AuthorID)
	}

	authors, err := s.resolveAuthors(ctx, authorIDs)
	if err != nil {
		return nil, 0, err
	}

	results := make([]response.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		results = append(results, response.ToReviewResponse(review, authors[review.AuthorID]))
	}

	return results, count, nil
}

func (s *reviewService) Create(ctx context.Context, principal authz.Principal, titleID uuid.UUID, req request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if err := s.ensureTitle(ctx, titleID); err != nil {
		return nil, err
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		TitleID:  titleID,
		AuthorID: principal.UserID,
		Text:     req.Text,
		Score:    req.Score,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("you have already reviewed this title")
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("title_id", titleID.String()),
		zap.String("author", principal.Username),
	)

	out := response.ToReviewResponse(review, principal.Username)
	return &out, nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID uuid.UUID) (*response.ReviewResponse, error) {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, review)
}

func (s *reviewService) Update(ctx context.Context, principal authz.Principal, titleID, reviewID uuid.UUID, req request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !authz.CanModifyContent(principal, review.AuthorID) {
		return nil, apperr.Forbidden("you may only edit your own review")
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}

	if err := s.repo.Review.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	return s.toResponse(ctx, review)
}

func (s *reviewService) Delete(ctx context.Context, principal authz.Principal, titleID, reviewID uuid.UUID) error {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !authz.CanModifyContent(principal, review.AuthorID) {
		return apperr.Forbidden("you may only delete your own review")
	}

	if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	return nil
}

func (s *reviewService) ensureTitle(ctx context.Context, titleID uuid.UUID) error {
	title, err := s.repo.Title.FindByID(ctx, titleID)
	if err != nil {
		return fmt.Errorf("find title: %w", err)
	}
	if title == nil {
		return apperr.NotFound("title not found")
	}
	return nil
}

func (s *reviewService) findReview(ctx context.Context, titleID, reviewID uuid.UUID) (*entity.Review, error) {
	if err := s.ensureTitle(ctx, titleID); err != nil {
		return nil, err
	}

	review, err := s.repo.Review.FindByIDAndTitle(ctx, reviewID, titleID)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return nil, apperr.NotFound("review not found")
	}
	return review, nil
}

func (s *reviewService) resolveAuthors(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	users, err := s.repo.User.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve authors: %w", err)
	}

	names := make(map[uuid.UUID]string, len(users))
	for id, user := range users {
		names[id] = user.Username
	}
	return names, nil
}

func (s *reviewService) toResponse(ctx context.Context, review *entity.Review) (*response.ReviewResponse, error) {
	authors, err := s.resolveAuthors(ctx, []uuid.UUID{review.AuthorID})
	if err != nil {
		return nil, err
	}

	out := response.ToReviewResponse(review, authors[review.AuthorID])
	return &out, nil
}
