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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CommentService handles comments two levels deep: the review must belong to
// the title, and the comment must belong to the review, or the whole chain
// resolves to a miss.
type CommentService interface {
	List(ctx context.Context, titleID, reviewID uuid.UUID, page request.Pagination) ([]response.CommentResponse, int64, error)
	Create(ctx context.Context, principal authz.Principal, titleID, reviewID uuid.UUID, req request.CreateCommentRequest) (*response.CommentResponse, error)
	Get(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*response.CommentResponse, error)
	Update(ctx context.Context, principal authz.Principal, titleID, reviewID, commentID uuid.UUID, req request.UpdateCommentRequest) (*response.CommentResponse, error)
	Delete(ctx context.Context, principal authz.Principal, titleID, reviewID, commentID uuid.UUID) error
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("usecase", "comment")),
	}
}

func (s *commentService) List(ctx context.Context, titleID, reviewID uuid.UUID, page request.Pagination) ([]response.CommentResponse, int64, error) {
	if err := s.ensureReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}

	comments, err := s.repo.Comment.FindByReviewID(ctx, reviewID, page.PerPage, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}

	count, err := s.repo.Comment.CountByReviewID(ctx, reviewID)
	if err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	authorIDs := make([]uuid.UUID, 0, len(comments))
	for _, comment := range comments {
		authorIDs = append(authorIDs, comment.AuthorID)
	}

	authors, err := s.resolveAuthors(ctx, authorIDs)
	if err != nil {
		return nil, 0, err
	}

	results := make([]response.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		results = append(results, response.ToCommentResponse(comment, authors[comment.AuthorID]))
	}

	return results, count, nil
}

func (s *commentService) Create(ctx context.Context, principal authz.Principal, titleID, reviewID uuid.UUID, req request.CreateCommentRequest) (*response.CommentResponse, error) {
	if err := s.ensureReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ReviewID: reviewID,
		AuthorID: principal.UserID,
		Text:     req.Text,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info("Comment created",
		zap.String("review_id", reviewID.String()),
		zap.String("author", principal.Username),
	)

	out := response.ToCommentResponse(comment, principal.Username)
	return &out, nil
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*response.CommentResponse, error) {
	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, comment)
}

func (s *commentService) Update(ctx context.Context, principal authz.Principal, titleID, reviewID, commentID uuid.UUID, req request.UpdateCommentRequest) (*response.CommentResponse, error) {
	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !authz.CanModifyContent(principal, comment.AuthorID) {
		return nil, apperr.Forbidden("you may only edit your own comment")
	}

	comment.Text = req.Text
	if err := s.repo.Comment.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}

	return s.toResponse(ctx, comment)
}

func (s *commentService) Delete(ctx context.Context, principal authz.Principal, titleID, reviewID, commentID uuid.UUID) error {
	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !authz.CanModifyContent(principal, comment.AuthorID) {
		return apperr.Forbidden("you may only delete your own comment")
	}

	if err := s.repo.Comment.Delete(ctx, comment.ID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	return nil
}

func (s *commentService) ensureReview(ctx context.Context, titleID, reviewID uuid.UUID) error {
	title, err := s.repo.Title.FindByID(ctx, titleID)
	if err != nil {
		return fmt.Errorf("find title: %w", err)
	}
	if title == nil {
		return apperr.NotFound("title not found")
	}

	review, err := s.repo.Review.FindByIDAndTitle(ctx, reviewID, titleID)
	if err != nil {
		return fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return apperr.NotFound("review not found")
	}
	return nil
}

func (s *commentService) findComment(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*entity.Comment, error) {
	if err := s.ensureReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.repo.Comment.FindByIDAndReview(ctx, commentID, reviewID)
	if err != nil {
		return nil, fmt.Errorf("find comment: %w", err)
	}
	if comment == nil {
		return nil, apperr.NotFound("comment not found")
	}
	return comment, nil
}

func (s *commentService) resolveAuthors(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
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

func (s *commentService) toResponse(ctx context.Context, comment *entity.Comment) (*response.CommentResponse, error) {
	authors, err := s.resolveAuthors(ctx, []uuid.UUID{comment.AuthorID})
	if err != nil {
		return nil, err
	}

	out := response.ToCommentResponse(comment, authors[comment.AuthorID])
	return &out, nil
}
