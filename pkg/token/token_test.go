package token

import (
	"testing"
	"time"

	"artdb/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService("test-secret", time.Hour, 15*time.Minute, 6)
}

func newTestUser() *entity.User {
	u := &entity.User{
		Username: "bob",
		Email:    "bob@x.com",
		Role:     entity.RoleUser,
	}
	u.ID = uuid.New()
	return u
}

func TestGenerateCode(t *testing.T) {
	s := newTestService()

	code, err := s.GenerateCode()
	require.NoError(t, err)
	assert.Len(t, code, 6)
	for _, c := range code {
		assert.True(t, c >= '0' && c <= '9')
	}
}

func TestCodeHashRoundTrip(t *testing.T) {
	s := newTestService()

	code, err := s.GenerateCode()
	require.NoError(t, err)

	hash, err := s.HashCode(code)
	require.NoError(t, err)
	assert.NotContains(t, hash, code)

	assert.True(t, s.CheckCode(code, hash))
	assert.False(t, s.CheckCode("000000", hash))
}

func TestFingerprintTracksUserState(t *testing.T) {
	s := newTestService()
	user := newTestUser()

	fp := s.Fingerprint(user)
	assert.Equal(t, fp, s.Fingerprint(user), "same state must yield same fingerprint")

	changed := *user
	changed.Email = "other@x.com"
	assert.NotEqual(t, fp, s.Fingerprint(&changed))

	promoted := *user
	promoted.Role = entity.RoleAdmin
	assert.NotEqual(t, fp, s.Fingerprint(&promoted))

	confirmed := *user
	confirmed.Confirmed = true
	assert.NotEqual(t, fp, s.Fingerprint(&confirmed))
}

func TestFingerprintDependsOnSecret(t *testing.T) {
	user := newTestUser()

	a := NewService("secret-a", time.Hour, time.Minute, 6)
	b := NewService("secret-b", time.Hour, time.Minute, 6)
	assert.NotEqual(t, a.Fingerprint(user), b.Fingerprint(user))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	s := newTestService()
	user := newTestUser()
	user.Role = entity.RoleModerator

	raw, expiresAt, err := s.NewAccessToken(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := s.ParseAccessToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Username)
	assert.Equal(t, string(entity.RoleModerator), claims.Role)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	s := NewService("test-secret", -time.Minute, time.Minute, 6)

	raw, _, err := s.NewAccessToken(newTestUser())
	require.NoError(t, err)

	_, err = s.ParseAccessToken(raw)
	assert.Error(t, err)
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewService("secret-a", time.Hour, time.Minute, 6)
	verifier := NewService("secret-b", time.Hour, time.Minute, 6)

	raw, _, err := issuer.NewAccessToken(newTestUser())
	require.NoError(t, err)

	_, err = verifier.ParseAccessToken(raw)
	assert.Error(t, err)

	_, err = verifier.ParseAccessToken("not-a-token")
	assert.Error(t, err)
}
