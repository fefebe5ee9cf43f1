package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"socialhub/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, userID string) error
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
	GetFriends(ctx context.Context, userIDs []string) ([]models.Friend, error)
	SetFriendship(ctx context.Context, userID, friendID string, friends bool) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetAll(ctx context.Context) ([]models.Post, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Post, error)
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	ToggleLike(ctx context.Context, postID, userID string) (*models.Post, error)
	Delete(ctx context.Context, postID string) error
}

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetConversation(ctx context.Context, userID, otherID string) ([]models.Message, error)
}

type StatsRepository interface {
	Stats(ctx context.Context) (*models.Stats, error)
}

type Repository struct {
	User    UserRepository
	Post    PostRepository
	Message MessageRepository
	Stats   StatsRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Post:    NewPostRepository(db),
		Message: NewMessageRepository(db),
		Stats:   NewStatsRepository(db),
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
