package usecase

import (
	"context"
	"fmt"
	"time"

	"artdb/internal/authz"
	"artdb/internal/data/entity"
	"artdb/internal/data/repository"
	"artdb/internal/dto/request"
	"artdb/pkg/apperr"
	"artdb/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	List(ctx context.Context, search string, page request.Pagination) ([]*entity.User, int64, error)
	Create(ctx context.Context, req request.CreateUserRequest) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, username string, req request.UpdateUserRequest) (*entity.User, error)
	Delete(ctx context.Context, username string) error

	Me(ctx context.Context, principal authz.Principal) (*entity.User, error)
	UpdateMe(ctx context.Context, principal authz.Principal, req request.UpdateProfileRequest) (*entity.User, error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("usecase", "user")),
	}
}

func (s *userService) List(ctx context.Context, search string, page request.Pagination) ([]*entity.User, int64, error) {
	users, err := s.repo.User.FindAll(ctx, search, page.PerPage, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	count, err := s.repo.User.CountAll(ctx, search)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	return users, count, nil
}

func (s *userService) Create(ctx context.Context, req request.CreateUserRequest) (*entity.User, error) {
	role := entity.UserRole(req.Role)
	if req.Role == "" {
		role = entity.RoleUser
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:  req.Username,
		Email:     req.Email,
		FirstName: optional(req.FirstName),
		LastName:  optional(req.LastName),
		Bio:       optional(req.Bio),
		Role:      role,
		Confirmed: true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("username or email is already taken")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User created",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, err := s.repo.User.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, username string, req request.UpdateUserRequest) (*entity.User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = req.FirstName
	}
	if req.LastName != nil {
		user.LastName = req.LastName
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Role != nil {
		user.Role = entity.UserRole(*req.Role)
	}

	return s.saveUser(ctx, user)
}

func (s *userService) Delete(ctx context.Context, username string) error {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := s.repo.User.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.log.Info("User deleted", zap.String("username", username))
	return nil
}

func (s *userService) Me(ctx context.Context, principal authz.Principal) (*entity.User, error) {
	user, err := s.repo.User.FindByID(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, apperr.Unauthorized("account no longer exists")
	}
	return user, nil
}

func (s *userService) UpdateMe(ctx context.Context, principal authz.Principal, req request.UpdateProfileRequest) (*entity.User, error) {
	user, err := s.Me(ctx, principal)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = req.FirstName
	}
	if req.LastName != nil {
		user.LastName = req.LastName
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}

	return s.saveUser(ctx, user)
}

func (s *userService) saveUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	user.UpdatedAt = time.Now()
	if err := s.repo.User.Update(ctx, user); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("username or email is already taken")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
