package service

import (
	"context"

	"go.uber.org/zap"

	"socialhub/internal/models"
	"socialhub/internal/repository"
)

type AdminService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, userID string) error
	DeletePost(ctx context.Context, postID string) error
	Stats(ctx context.Context) (*models.Stats, error)
}

type adminService struct {
	userRepo  repository.UserRepository
	statsRepo repository.StatsRepository
	posts     PostService
	log       *zap.Logger
}

func NewAdminService(userRepo repository.UserRepository, statsRepo repository.StatsRepository, posts PostService, log *zap.Logger) AdminService {
	return &adminService{
		userRepo:  userRepo,
		statsRepo: statsRepo,
		posts:     posts,
		log:       log,
	}
}

func (s *adminService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return users, nil
}

func (s *adminService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return storeError(err)
	}
	s.log.Info("user deleted by admin", zap.String("user_id", userID))
	return nil
}

func (s *adminService) DeletePost(ctx context.Context, postID string) error {
	return s.posts.DeletePost(ctx, postID, "", true)
}

func (s *adminService) Stats(ctx context.Context) (*models.Stats, error) {
	stats, err := s.statsRepo.Stats(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return stats, nil
}
