package usecase

import (
	"context"
	"testing"

	"artdb/internal/data/entity"
	"artdb/internal/dto/request"
	"artdb/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCommentChainMustMatch(t *testing.T) {
	repo := newTestRepository()
	reviews := NewReviewService(repo, zap.NewNop())
	comments := NewCommentService(repo, zap.NewNop())
	ctx := context.Background()

	author := seedUser(t, repo, "alice", entity.RoleUser)
	titleA := seedTitle(t, repo, "Dune")
	titleB := seedTitle(t, repo, "Solaris")

	review, err := reviews.Create(ctx, author, titleA, request.CreateReviewRequest{Text: "great", Score: 9})
	require.NoError(t, err)
	reviewID := uuid.MustParse(review.ID)

	comment, err := comments.Create(ctx, author, titleA, reviewID, request.CreateCommentRequest{Text: "agreed"})
	require.NoError(t, err)
	commentID := uuid.MustParse(comment.ID)

	// Every link of the chain has to match the URL.
	_, err = comments.Get(ctx, titleA, reviewID, commentID)
	require.NoError(t, err)

	_, err = comments.Get(ctx, titleB, reviewID, commentID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = comments.Get(ctx, titleA, uuid.New(), commentID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCommentOwnership(t *testing.T) {
	repo := newTestRepository()
	reviews := NewReviewService(repo, zap.NewNop())
	comments := NewCommentService(repo, zap.NewNop())
	ctx := context.Background()

	author := seedUser(t, repo, "alice", entity.RoleUser)
	stranger := seedUser(t, repo, "bob", entity.RoleUser)
	admin := seedUser(t, repo, "root", entity.RoleAdmin)
	titleID := seedTitle(t, repo, "Dune")

	review, err := reviews.Create(ctx, author, titleID, request.CreateReviewRequest{Text: "great", Score: 9})
	require.NoError(t, err)
	reviewID := uuid.MustParse(review.ID)

	comment, err := comments.Create(ctx, author, titleID, reviewID, request.CreateCommentRequest{Text: "agreed"})
	require.NoError(t, err)
	commentID := uuid.MustParse(comment.ID)

	_, err = comments.Update(ctx, stranger, titleID, reviewID, commentID, request.UpdateCommentRequest{Text: "hijack"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	updated, err := comments.Update(ctx, author, titleID, reviewID, commentID, request.UpdateCommentRequest{Text: "revised"})
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Text)

	require.NoError(t, comments.Delete(ctx, admin, titleID, reviewID, commentID))
}

func TestCommentListCounts(t *testing.T) {
	repo := newTestRepository()
	reviews := NewReviewService(repo, zap.NewNop())
	comments := NewCommentService(repo, zap.NewNop())
	ctx := context.Background()

	author := seedUser(t, repo, "alice", entity.RoleUser)
	titleID := seedTitle(t, repo, "Dune")

	review, err := reviews.Create(ctx, author, titleID, request.CreateReviewRequest{Text: "great", Score: 9})
	require.NoError(t, err)
	reviewID := uuid.MustParse(review.ID)

	for i := 0; i < 3; i++ {
		_, err := comments.Create(ctx, author, titleID, reviewID, request.CreateCommentRequest{Text: "note"})
		require.NoError(t, err)
	}

	results, count, err := comments.List(ctx, titleID, reviewID, request.Pagination{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Len(t, results, 2)
}
