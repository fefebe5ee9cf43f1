package service

import (
	"context"
	"errors"
	"slices"

	"socialhub/internal/models"
	"socialhub/internal/repository"
)

type UserService interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetFriends(ctx context.Context, userID string) ([]models.Friend, error)
	ToggleFriend(ctx context.Context, userID, friendID string) ([]models.Friend, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	return user, nil
}

func (s *userService) GetFriends(ctx context.Context, userID string) ([]models.Friend, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}

	friends, err := s.userRepo.GetFriends(ctx, user.Friends)
	if err != nil {
		return nil, storeError(err)
	}
	return friends, nil
}

// ToggleFriend befriends or unfriends friendID on both sides and returns the
// caller's updated friend list.
func (s *userService) ToggleFriend(ctx context.Context, userID, friendID string) ([]models.Friend, error) {
	if userID == friendID {
		return nil, categorize(ErrValidation, errors.New("cannot befriend yourself"))
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	if _, err := s.userRepo.GetUserByID(ctx, friendID); err != nil {
		return nil, storeError(err)
	}

	add := !slices.Contains(user.Friends, friendID)
	if err := s.userRepo.SetFriendship(ctx, userID, friendID, add); err != nil {
		return nil, storeError(err)
	}

	return s.GetFriends(ctx, userID)
}
