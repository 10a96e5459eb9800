// Package token implements the two credentials of the signup flow: one-time
// email confirmation codes and the signed access tokens they are exchanged
// for. The service is injected with its secret; nothing here is process-global.
package token

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"artdb/internal/data/entity"
	"artdb/pkg/apperr"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	secret    []byte
	accessTTL time.Duration
	codeTTL   time.Duration
	codeLen   int
}

func NewService(secret string, accessTTL, codeTTL time.Duration, codeLen int) *Service {
	if codeLen <= 0 {
		codeLen = 6
	}
	return &Service{
		secret:    []byte(secret),
		accessTTL: accessTTL,
		codeTTL:   codeTTL,
		codeLen:   codeLen,
	}
}

func (s *Service) CodeTTL() time.Duration { return s.codeTTL }

// ==================== CONFIRMATION CODES ====================

// GenerateCode returns a numeric one-time code from crypto/rand.
func (s *Service) GenerateCode() (string, error) {
	digits := make([]byte, s.codeLen)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generate confirmation code: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// HashCode hashes a code for storage. The plain code only ever travels by mail.
func (s *Service) HashCode(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash confirmation code: %w", err)
	}
	return string(hash), nil
}

func (s *Service) CheckCode(code, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}

// Fingerprint derives an HMAC over the mutable user fields a confirmation
// code is bound to. Changing any of them invalidates outstanding codes.
func (s *Service) Fingerprint(user *entity.User) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s|%s|%s|%t", user.Username, user.Email, user.Role, user.Confirmed)
	return hex.EncodeToString(mac.Sum(nil))
}

// ==================== ACCESS TOKENS ====================

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// NewAccessToken issues a short-lived HS256 token carrying identity claims.
func (s *Service) NewAccessToken(user *entity.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.accessTTL)

	claims := Claims{
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}

	return signed, expiresAt, nil
}

func (s *Service) ParseAccessToken(raw string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		return nil, apperr.Unauthorized("invalid or expired token")
	}
	return claims, nil
}
