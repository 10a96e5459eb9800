package usecase

import (
	"context"
	"testing"

	"artdb/internal/dto/request"
	"artdb/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCategoryDuplicateSlugConflicts(t *testing.T) {
	repo := newTestRepository()
	svc := NewCatalogService(repo, zap.NewNop())
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, request.CreateCategoryRequest{Name: "Movies", Slug: "movies"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, request.CreateCategoryRequest{Name: "Films", Slug: "movies"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestCategoryDeleteMissing(t *testing.T) {
	repo := newTestRepository()
	svc := NewCatalogService(repo, zap.NewNop())

	err := svc.DeleteCategory(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGenreRoundTrip(t *testing.T) {
	repo := newTestRepository()
	svc := NewCatalogService(repo, zap.NewNop())
	ctx := context.Background()

	_, err := svc.CreateGenre(ctx, request.CreateGenreRequest{Name: "Sci-Fi", Slug: "sci-fi"})
	require.NoError(t, err)

	genres, count, err := svc.ListGenres(ctx, "", request.Pagination{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, genres, 1)
	assert.Equal(t, "sci-fi", genres[0].Slug)

	require.NoError(t, svc.DeleteGenre(ctx, "sci-fi"))

	_, count, err = svc.ListGenres(ctx, "", request.Pagination{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestGenreSearchFilters(t *testing.T) {
	repo := newTestRepository()
	svc := NewCatalogService(repo, zap.NewNop())
	ctx := context.Background()

	_, err := svc.CreateGenre(ctx, request.CreateGenreRequest{Name: "Sci-Fi", Slug: "sci-fi"})
	require.NoError(t, err)
	_, err = svc.CreateGenre(ctx, request.CreateGenreRequest{Name: "Drama", Slug: "drama"})
	require.NoError(t, err)

	genres, count, err := svc.ListGenres(ctx, "dra", request.Pagination{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, genres, 1)
	assert.Equal(t, "drama", genres[0].Slug)
}
