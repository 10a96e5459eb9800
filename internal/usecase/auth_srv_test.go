package usecase

import (
	"context"
	"testing"
	"time"

	"artdb/internal/data/entity"
	"artdb/internal/data/repository"
	"artdb/internal/dto/request"
	"artdb/pkg/apperr"
	"artdb/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthFixture(t *testing.T) (*repository.Repository, *token.Service, *fakeMailer, AuthService) {
	t.Helper()
	repo := newTestRepository()
	tokens := token.NewService("test-secret", time.Hour, 15*time.Minute, 6)
	mail := &fakeMailer{}
	svc := NewAuthService(repo, tokens, mail, zap.NewNop())
	return repo, tokens, mail, svc
}

func TestSignupCreatesUserAndMailsCode(t *testing.T) {
	repo, _, mail, svc := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, request.SignupRequest{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, entity.RoleUser, user.Role)
	assert.False(t, user.Confirmed)

	stored, err := repo.User.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, stored)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "alice@example.com", mail.sent[0].To)
	assert.Len(t, mail.sent[0].Code, 6)
}

func TestSignupSamePairResendsCode(t *testing.T) {
	repo, _, mail, svc := newAuthFixture(t)
	ctx := context.Background()

	req := request.SignupRequest{Username: "alice", Email: "alice@example.com"}

	first, err := svc.Signup(ctx, req)
	require.NoError(t, err)

	second, err := svc.Signup(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, mail.sent, 2)

	count, err := repo.User.CountAll(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSignupPartialCollisionConflicts(t *testing.T) {
	_, _, _, svc := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, request.SignupRequest{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, request.SignupRequest{Username: "alice", Email: "other@example.com"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.Signup(ctx, request.SignupRequest{Username: "bob", Email: "alice@example.com"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestIssueTokenHappyPath(t *testing.T) {
	repo, tokens, mail, svc := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, request.SignupRequest{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	signed, err := svc.IssueToken(ctx, request.TokenRequest{
		Username:         "alice",
		ConfirmationCode: mail.lastCode(),
	})
	require.NoError(t, err)

	claims, err := tokens.ParseAccessToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, string(entity.RoleUser), claims.Role)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	confirmed, err := repo.User.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, confirmed.Confirmed)
}

func TestIssueTokenUnknownUser(t *testing.T) {
	_, _, _, svc := newAuthFixture(t)

	_, err := svc.IssueToken(context.Background(), request.TokenRequest{
		Username:         "ghost",
		ConfirmationCode: "123456",
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestIssueTokenWrongCode(t *testing.T) {
	_, _, mail, svc := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, request.SignupRequest{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	wrong := "000000"
	if mail.lastCode() == wrong {
		wrong = "000001"
	}

	_, err = svc.IssueToken(ctx, request.TokenRequest{Username: "alice", ConfirmationCode: wrong})
	require.ErrorIs(t, err, apperr.ErrInvalid)
	assert.EqualError(t, err, "incorrect username and confirmation code pair")
}

func TestIssueTokenCodeIsSingleUse(t *testing.T) {
	_, _, mail, svc := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, request.SignupRequest{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	code := mail.lastCode()

	_, err = svc.IssueToken(ctx, request.TokenRequest{Username: "alice", ConfirmationCode: code})
	require.NoError(t, err)

	_, err = svc.IssueToken(ctx, request.TokenRequest{Username: "alice", ConfirmationCode: code})
	assert.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestIssueTokenRetiredByAccountChange(t *testing.T) {
	repo, _, mail, svc := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, request.SignupRequest{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	code := mail.lastCode()

	// Changing the email after the code was issued breaks the fingerprint.
	user, err := repo.User.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	user.Email = "changed@example.com"
	require.NoError(t, repo.User.Update(ctx, user))

	_, err = svc.IssueToken(ctx, request.TokenRequest{Username: "alice", ConfirmationCode: code})
	assert.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestSignupSurvivesMailFailure(t *testing.T) {
	repo, _, mail, svc := newAuthFixture(t)
	mail.fail = true
	ctx := context.Background()

	_, err := svc.Signup(ctx, request.SignupRequest{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	stored, err := repo.User.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotNil(t, stored)
}
