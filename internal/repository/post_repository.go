package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"socialhub/internal/models"
)

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

// Create inserts a new post. The identifier and creation time are assigned here.
func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts
		(post_id, user_id, first_name, last_name, location, description, user_picture_path,
		 picture_path, video_path, audio_path, likes, comments, created_at)
		VALUES
		(:post_id, :user_id, :first_name, :last_name, :location, :description, :user_picture_path,
		 :picture_path, :video_path, :audio_path, :likes, :comments, :created_at)
	`

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	if post.Likes == nil {
		post.Likes = pq.StringArray{}
	}
	if post.Comments == nil {
		post.Comments = pq.StringArray{}
	}
	post.CreatedAt = time.Now()

	_, err := r.DB.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetAll(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}

	query := `SELECT * FROM posts ORDER BY created_at DESC`

	if err := r.DB.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("get posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) GetByUserID(ctx context.Context, userID string) ([]models.Post, error) {
	posts := []models.Post{}

	query := `SELECT * FROM posts WHERE user_id = $1 ORDER BY created_at DESC`

	if err := r.DB.SelectContext(ctx, &posts, query, userID); err != nil {
		return nil, fmt.Errorf("get posts of user %s: %w", userID, err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post

	query := `SELECT * FROM posts WHERE post_id = $1`

	err := r.DB.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	return &post, nil
}

// ToggleLike adds userID to the post likes, or removes it if already present.
func (r *PostRepositoryImpl) ToggleLike(ctx context.Context, postID, userID string) (*models.Post, error) {
	var post models.Post

	query := `
		UPDATE posts SET likes = CASE
			WHEN $2 = ANY(likes) THEN array_remove(likes, $2)
			ELSE array_append(likes, $2)
		END
		WHERE post_id = $1
		RETURNING *
	`

	err := r.DB.GetContext(ctx, &post, query, postID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("toggle like: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.DB.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", postID, ErrNotFound)
	}

	return nil
}
