package usecase

import (
	"artdb/internal/data/repository"
	"artdb/pkg/mailer"
	"artdb/pkg/token"
	"artdb/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Catalog CatalogService
	Title   TitleService
	Review  ReviewService
	Comment CommentService
}

func NewService(repo *repository.Repository, config *utils.Config, tokens *token.Service, mail mailer.Sender, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, tokens, mail, log),
		User:    NewUserService(repo, log),
		Catalog: NewCatalogService(repo, log),
		Title:   NewTitleService(repo, log),
		Review:  NewReviewService(repo, log),
		Comment: NewCommentService(repo, log),
	}
}
