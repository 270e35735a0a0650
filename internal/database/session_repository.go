package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/wordquiz/internal/quiz"
)

// ErrSessionNotFound is returned by Get when a chat has no stored session
var ErrSessionNotFound = errors.New("session not found")

type sessionRow struct {
	ChatID    int64     `db:"chat_id"`
	Payload   string    `db:"payload"`
	UpdatedAt time.Time `db:"updated_at"`
}

// SessionRepository stores one quiz session per chat as a JSON document
type SessionRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSessionRepository creates a new repository instance
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db, now: time.Now}
}

// Get returns the session of a chat
func (r *SessionRepository) Get(ctx context.Context, chatID int64) (*quiz.SessionState, error) {
	var row sessionRow
	query := r.db.Rebind(`SELECT chat_id, payload, updated_at FROM quiz_sessions WHERE chat_id = ?`)
	if err := r.db.GetContext(ctx, &row, query, chatID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session %d: %v", chatID, err)
	}

	var st quiz.SessionState
	if err := json.Unmarshal([]byte(row.Payload), &st); err != nil {
		return nil, fmt.Errorf("failed to decode session %d: %v", chatID, err)
	}
	return &st, nil
}

// Save inserts or replaces the session of a chat
func (r *SessionRepository) Save(ctx context.Context, chatID int64, st *quiz.SessionState) error {
	payload, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode session %d: %v", chatID, err)
	}

	query := r.db.Rebind(`
		INSERT INTO quiz_sessions (chat_id, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (chat_id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`)
	if _, err := r.db.ExecContext(ctx, query, chatID, string(payload), r.now().UTC()); err != nil {
		return fmt.Errorf("failed to save session %d: %v", chatID, err)
	}
	return nil
}

// Delete removes the session of a chat. Deleting a missing session is not an error.
func (r *SessionRepository) Delete(ctx context.Context, chatID int64) error {
	query := r.db.Rebind(`DELETE FROM quiz_sessions WHERE chat_id = ?`)
	if _, err := r.db.ExecContext(ctx, query, chatID); err != nil {
		return fmt.Errorf("failed to delete session %d: %v", chatID, err)
	}
	return nil
}

// PurgeExpired deletes every session last saved before the given time and
// returns how many were removed.
func (r *SessionRepository) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	query := r.db.Rebind(`DELETE FROM quiz_sessions WHERE updated_at < ?`)
	result, err := r.db.ExecContext(ctx, query, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %v", err)
	}
	return rows, nil
}
