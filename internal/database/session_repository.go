package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/vocabdrill/pkg/models"
)

// SessionRepository handles database operations for the append-only review
// session history
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new repository instance
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

type sessionRow struct {
	Seq            int64         `db:"seq"`
	ID             string        `db:"id"`
	UserID         string        `db:"user_id"`
	StartMs        int64         `db:"start_ms"`
	EndMs          sql.NullInt64 `db:"end_ms"`
	Mode           string        `db:"mode"`
	TotalQuestions int           `db:"total_questions"`
	CorrectAnswers int           `db:"correct_answers"`
	DurationMs     int64         `db:"duration_ms"`
	Results        string        `db:"results"`
}

// Append persists one completed session. Sessions are never updated or
// deleted individually; the history only grows.
func (r *SessionRepository) Append(ctx context.Context, session *models.ReviewSession) error {
	results, err := json.Marshal(session.Results)
	if err != nil {
		return fmt.Errorf("failed to encode session results: %w", err)
	}

	var endMs sql.NullInt64
	if session.EndTime != nil {
		endMs = sql.NullInt64{Int64: session.EndTime.UnixMilli(), Valid: true}
	}

	query := r.db.Rebind(`
		INSERT INTO review_sessions (
			id, user_id, start_ms, end_ms, mode,
			total_questions, correct_answers, duration_ms, results
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err = r.db.ExecContext(ctx, query,
		session.ID, session.UserID, session.StartTime.UnixMilli(), endMs,
		session.Mode, session.TotalQuestions, session.CorrectAnswers,
		session.DurationMs, string(results),
	)
	if err != nil {
		return fmt.Errorf("failed to append review session: %w", err)
	}
	return nil
}

// GetAll returns the full session history in insertion order
func (r *SessionRepository) GetAll(ctx context.Context) ([]models.ReviewSession, error) {
	var rows []sessionRow
	err := r.db.SelectContext(ctx, &rows, "SELECT * FROM review_sessions ORDER BY seq ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to get review sessions: %w", err)
	}

	sessions := make([]models.ReviewSession, len(rows))
	for i, row := range rows {
		session := models.ReviewSession{
			ID:             row.ID,
			UserID:         row.UserID,
			StartTime:      time.UnixMilli(row.StartMs).UTC(),
			Mode:           row.Mode,
			TotalQuestions: row.TotalQuestions,
			CorrectAnswers: row.CorrectAnswers,
			DurationMs:     row.DurationMs,
		}
		if row.EndMs.Valid {
			end := time.UnixMilli(row.EndMs.Int64).UTC()
			session.EndTime = &end
		}
		if err := json.Unmarshal([]byte(row.Results), &session.Results); err != nil {
			return nil, fmt.Errorf("failed to decode results for session %s: %w", row.ID, err)
		}
		sessions[i] = session
	}
	return sessions, nil
}

// DeleteAll wipes the session history; used only for a full data reset
func (r *SessionRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM review_sessions"); err != nil {
		return fmt.Errorf("failed to clear review sessions: %w", err)
	}
	return nil
}
