package service

import (
	"go.uber.org/zap"

	"socialhub/internal/config"
	"socialhub/internal/repository"
)

type Service struct {
	User    UserService
	Post    PostService
	Auth    AuthService
	Message MessageService
	Admin   AdminService
}

func NewService(rep *repository.Repository, cfg *config.Config, uploader MediaUploader, log *zap.Logger) *Service {
	posts := NewPostService(rep.Post, rep.User, uploader, log)

	return &Service{
		User:    NewUserService(rep.User),
		Post:    posts,
		Auth:    NewAuthService(rep.User, uploader, cfg, log),
		Message: NewMessageService(rep.Message, rep.User),
		Admin:   NewAdminService(rep.User, rep.Stats, posts, log),
	}
}
