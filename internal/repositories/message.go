package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/models"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/shared"
)

// MessageRepository implements [models.Repository] for contact-form
// [models.Message] persistence.
type MessageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new [MessageRepository] with the given database connection
func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a new message into the database with generated ID and sequence
func (r *MessageRepository) Create(message *models.Message) error {
	if err := message.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "messages")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	message.SetID(id)

	query := `
		INSERT INTO messages (id, sequence, name, email, message, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, message.Name(), message.Email(), message.Body(), message.CreatedAt(), message.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	return nil
}

// Get retrieves a message by ID, excluding soft-deleted messages
func (r *MessageRepository) Get(id string) (*models.Message, error) {
	query := `
		SELECT id, sequence, name, email, message, created_at, updated_at, deleted_at
		FROM messages
		WHERE id = ? AND deleted_at IS NULL
	`

	message, err := scanMessage(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: message %s", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query message: %w", err)
	}

	return message, nil
}

// Update modifies an existing message in the database
func (r *MessageRepository) Update(message *models.Message) error {
	if err := message.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	message.SetUpdatedAt(now)

	query := `
		UPDATE messages
		SET name = ?, email = ?, message = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, message.Name(), message.Email(), message.Body(), now, message.ID())
	if err != nil {
		return fmt.Errorf("failed to update message: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: message %s", shared.ErrNotFound, message.ID())
	}

	return nil
}

// Delete soft-deletes a message by ID
func (r *MessageRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE messages
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: message %s", shared.ErrNotFound, id)
	}

	return nil
}

// List retrieves all messages matching the given criteria, excluding soft-deleted messages.
// Results are returned newest first.
func (r *MessageRepository) List(criteria map[string]any) ([]*models.Message, error) {
	query := `
		SELECT id, sequence, name, email, message, created_at, updated_at, deleted_at
		FROM messages
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if email, ok := criteria["email"].(string); ok && email != "" {
		query += " AND email = ?"
		args = append(args, email)
	}

	query += " ORDER BY created_at DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return messages, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMessage(row scanner) (*models.Message, error) {
	var (
		id        string
		sequence  int
		name      string
		email     string
		body      string
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	if err := row.Scan(&id, &sequence, &name, &email, &body, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}

	message := models.NewMessage(sequence, name, email, body)
	message.SetID(id)
	message.SetCreatedAt(createdAt)
	message.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		message.SetDeletedAt(&deletedAt.Time)
	}

	return message, nil
}
