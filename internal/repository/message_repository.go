package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialhub/internal/models"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	query := `
		INSERT INTO messages (message_id, sender_id, receiver_id, text, created_at)
		VALUES (:message_id, :sender_id, :receiver_id, :text, :created_at)
	`

	if message.MessageID == "" {
		message.MessageID = uuid.New().String()
	}
	message.CreatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, message); err != nil {
		return fmt.Errorf("create message: %w", err)
	}

	return nil
}

// GetConversation returns messages exchanged between two users, oldest first.
func (r *messageRepository) GetConversation(ctx context.Context, userID, otherID string) ([]models.Message, error) {
	messages := []models.Message{}

	query := `
		SELECT * FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at
	`

	if err := r.db.SelectContext(ctx, &messages, query, userID, otherID); err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}

	return messages, nil
}
