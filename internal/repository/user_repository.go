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
	"golang.org/x/crypto/bcrypt"

	"socialhub/internal/models"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.UserID = uuid.New().String()
	user.PasswordHash = string(hashedPassword)
	if user.Friends == nil {
		user.Friends = pq.StringArray{}
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	user.CreatedAt = time.Now()

	query := `
		INSERT INTO users (user_id, first_name, last_name, email, password_hash, picture_path,
			friends, location, occupation, role, refresh_token, refresh_token_expiry_time, created_at)
		VALUES (:user_id, :first_name, :last_name, :email, :password_hash, :picture_path,
			:friends, :location, :occupation, :role, :refresh_token, :refresh_token_expiry_time, :created_at)
	`

	_, err = r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user with email %s: %w", user.Email, ErrDuplicate)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}

	query := `SELECT * FROM users ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid password")
	}

	return user, nil
}

func (r *userRepository) DeleteUser(ctx context.Context, userID string) error {
	query := `DELETE FROM users WHERE user_id = $1`

	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	return nil
}

func (r *userRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error {
	query := `
		UPDATE users
		SET refresh_token = $1, refresh_token_expiry_time = $2
		WHERE user_id = $3
	`

	_, err := r.db.ExecContext(ctx, query, refreshToken, expiryTime, userID)
	if err != nil {
		return fmt.Errorf("update refresh token: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	var user models.User

	query := `
		SELECT * FROM users
		WHERE refresh_token = $1
		AND refresh_token_expiry_time > CURRENT_TIMESTAMP
	`

	err := r.db.GetContext(ctx, &user, query, refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("refresh token invalid or expired: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("get user by refresh token: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetFriends(ctx context.Context, userIDs []string) ([]models.Friend, error) {
	friends := []models.Friend{}
	if len(userIDs) == 0 {
		return friends, nil
	}

	query := `
		SELECT user_id, first_name, last_name, occupation, location, picture_path
		FROM users
		WHERE user_id = ANY($1)
		ORDER BY first_name, last_name
	`

	if err := r.db.SelectContext(ctx, &friends, query, pq.Array(userIDs)); err != nil {
		return nil, fmt.Errorf("get friends: %w", err)
	}

	return friends, nil
}

// SetFriendship adds or removes the friendship on both users in one transaction.
func (r *userRepository) SetFriendship(ctx context.Context, userID, friendID string, friends bool) error {
	query := `UPDATE users SET friends = array_remove(friends, $2) WHERE user_id = $1`
	if friends {
		query = `UPDATE users SET friends = array_append(friends, $2) WHERE user_id = $1 AND NOT ($2 = ANY(friends))`
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin friendship update: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, query, userID, friendID); err != nil {
		return fmt.Errorf("update friends of %s: %w", userID, err)
	}
	if _, err := tx.ExecContext(ctx, query, friendID, userID); err != nil {
		return fmt.Errorf("update friends of %s: %w", friendID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit friendship update: %w", err)
	}

	return nil
}
