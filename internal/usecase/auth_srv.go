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
	"artdb/pkg/mailer"
	"artdb/pkg/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// The token endpoint never reveals which half of the pair was wrong.
const incorrectPairMsg = "incorrect username and confirmation code pair"

type AuthService interface {
	// Signup registers the username/email pair, or re-requests a code for an
	// already registered pair. Either way a fresh confirmation code is mailed.
	Signup(ctx context.Context, req request.SignupRequest) (*entity.User, error)
	// IssueToken exchanges a valid confirmation code for an access token and
	// consumes the code.
	IssueToken(ctx context.Context, req request.TokenRequest) (string, error)
}

type authService struct {
	repo   *repository.Repository
	tokens *token.Service
	mail   mailer.Sender
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, tokens *token.Service, mail mailer.Sender, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		mail:   mail,
		log:    log.With(zap.String("usecase", "auth")),
	}
}

func (s *authService) Signup(ctx context.Context, req request.SignupRequest) (*entity.User, error) {
	user, err := s.repo.User.FindByUsernameAndEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, fmt.Errorf("signup lookup: %w", err)
	}

	if user == nil {
		now := time.Now()
		user = &entity.User{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Username:  req.Username,
			Email:     req.Email,
			Role:      entity.RoleUser,
			Confirmed: false,
		}

		// Insert first and let the unique constraints arbitrate. A violation
		// means either a concurrent signup of the same pair, or one of the
		// fields taken by a different account.
		if err := s.repo.User.Create(ctx, user); err != nil {
			if !database.IsUniqueViolation(err) {
				return nil, fmt.Errorf("signup create: %w", err)
			}

			user, err = s.repo.User.FindByUsernameAndEmail(ctx, req.Username, req.Email)
			if err != nil {
				return nil, fmt.Errorf("signup re-lookup: %w", err)
			}
			if user == nil {
				return nil, apperr.Conflict("username or email is already taken")
			}
		}
	}

	if err := s.issueConfirmationCode(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) issueConfirmationCode(ctx context.Context, user *entity.User) error {
	code, err := s.tokens.GenerateCode()
	if err != nil {
		return err
	}

	hash, err := s.tokens.HashCode(code)
	if err != nil {
		return err
	}

	now := time.Now()
	confirmation := &entity.Confirmation{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:      user.ID,
		CodeHash:    hash,
		Fingerprint: s.tokens.Fingerprint(user),
		ExpiresAt:   now.Add(s.tokens.CodeTTL()),
	}

	if err := s.repo.Confirmation.Create(ctx, confirmation); err != nil {
		return fmt.Errorf("store confirmation: %w", err)
	}

	// Mail delivery must not fail the signup: the user can always re-request.
	if err := s.mail.Send(ctx, user.Email, code); err != nil {
		s.log.Error("Failed to send confirmation code",
			zap.Error(err),
			zap.String("username", user.Username),
		)
	}

	return nil
}

func (s *authService) IssueToken(ctx context.Context, req request.TokenRequest) (string, error) {
	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return "", fmt.Errorf("token lookup: %w", err)
	}
	if user == nil {
		return "", apperr.NotFound("user not found")
	}

	confirmation, err := s.repo.Confirmation.FindLatestActive(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("token confirmation lookup: %w", err)
	}
	if confirmation == nil {
		return "", apperr.Invalid(incorrectPairMsg)
	}

	// A fingerprint mismatch means the account changed after the code was
	// issued, which retires the code.
	if confirmation.Fingerprint != s.tokens.Fingerprint(user) {
		return "", apperr.Invalid(incorrectPairMsg)
	}

	if !s.tokens.CheckCode(req.ConfirmationCode, confirmation.CodeHash) {
		return "", apperr.Invalid(incorrectPairMsg)
	}

	if err := s.repo.Confirmation.MarkUsed(ctx, confirmation.ID); err != nil {
		return "", fmt.Errorf("consume confirmation: %w", err)
	}

	if !user.Confirmed {
		user.Confirmed = true
		user.UpdatedAt = time.Now()
		if err := s.repo.User.Update(ctx, user); err != nil {
			return "", fmt.Errorf("confirm user: %w", err)
		}
	}

	signed, _, err := s.tokens.NewAccessToken(user)
	if err != nil {
		return "", err
	}

	s.log.Info("Access token issued", zap.String("username", user.Username))
	return signed, nil
}
