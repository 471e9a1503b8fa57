package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/vocabdrill/internal/spaced_repetition"
	"github.com/example/vocabdrill/pkg/models"
)

// StudyItemRepository handles database operations for study items
type StudyItemRepository struct {
	db *sqlx.DB
}

// NewStudyItemRepository creates a new repository instance
func NewStudyItemRepository(db *sqlx.DB) *StudyItemRepository {
	return &StudyItemRepository{db: db}
}

// studyItemRow is the storage layout: timestamps as unix milliseconds.
type studyItemRow struct {
	ID              string  `db:"id"`
	VocabID         string  `db:"vocab_id"`
	Word            string  `db:"word"`
	Interval        int     `db:"interval"`
	EaseFactor      float64 `db:"ease_factor"`
	Repetitions     int     `db:"repetitions"`
	NextReviewMs    int64   `db:"next_review_ms"`
	LastReviewMs    int64   `db:"last_review_ms"`
	Difficulty      string  `db:"difficulty"`
	Quality         int     `db:"quality"`
	CorrectStreak   int     `db:"correct_streak"`
	TotalAttempts   int     `db:"total_attempts"`
	CorrectAttempts int     `db:"correct_attempts"`
}

func toStudyItemRow(item *models.StudyItem) studyItemRow {
	return studyItemRow{
		ID:              item.ID,
		VocabID:         item.VocabID,
		Word:            item.Word,
		Interval:        item.Interval,
		EaseFactor:      item.EaseFactor,
		Repetitions:     item.Repetitions,
		NextReviewMs:    item.NextReview.UnixMilli(),
		LastReviewMs:    item.LastReviewDate.UnixMilli(),
		Difficulty:      string(item.Difficulty),
		Quality:         item.Quality,
		CorrectStreak:   item.CorrectStreak,
		TotalAttempts:   item.TotalAttempts,
		CorrectAttempts: item.CorrectAttempts,
	}
}

func (r studyItemRow) toModel() models.StudyItem {
	return models.StudyItem{
		ID:              r.ID,
		VocabID:         r.VocabID,
		Word:            r.Word,
		Interval:        r.Interval,
		EaseFactor:      r.EaseFactor,
		Repetitions:     r.Repetitions,
		NextReview:      time.UnixMilli(r.NextReviewMs).UTC(),
		LastReviewDate:  time.UnixMilli(r.LastReviewMs).UTC(),
		Difficulty:      models.Difficulty(r.Difficulty),
		Quality:         r.Quality,
		CorrectStreak:   r.CorrectStreak,
		TotalAttempts:   r.TotalAttempts,
		CorrectAttempts: r.CorrectAttempts,
	}
}

// Insert persists a new study item
func (r *StudyItemRepository) Insert(ctx context.Context, item *models.StudyItem) error {
	query := r.db.Rebind(`
		INSERT INTO study_items (
			id, vocab_id, word, interval, ease_factor, repetitions,
			next_review_ms, last_review_ms, difficulty, quality,
			correct_streak, total_attempts, correct_attempts
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	row := toStudyItemRow(item)
	_, err := r.db.ExecContext(ctx, query,
		row.ID, row.VocabID, row.Word, row.Interval, row.EaseFactor,
		row.Repetitions, row.NextReviewMs, row.LastReviewMs, row.Difficulty,
		row.Quality, row.CorrectStreak, row.TotalAttempts, row.CorrectAttempts,
	)
	if err != nil {
		return fmt.Errorf("failed to insert study item: %w", err)
	}
	return nil
}

// GetByID returns one study item by id
func (r *StudyItemRepository) GetByID(ctx context.Context, id string) (*models.StudyItem, error) {
	var row studyItemRow
	query := r.db.Rebind("SELECT * FROM study_items WHERE id = ?")
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", spaced_repetition.ErrItemNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get study item: %w", err)
	}
	item := row.toModel()
	return &item, nil
}

// GetAll returns every study item in storage order
func (r *StudyItemRepository) GetAll(ctx context.Context) ([]models.StudyItem, error) {
	var rows []studyItemRow
	err := r.db.SelectContext(ctx, &rows, "SELECT * FROM study_items")
	if err != nil {
		return nil, fmt.Errorf("failed to get study items: %w", err)
	}
	items := make([]models.StudyItem, len(rows))
	for i, row := range rows {
		items[i] = row.toModel()
	}
	return items, nil
}

// Update writes one study item keyed by id. Updating only the touched record
// keeps two callers reviewing different words from clobbering each other.
func (r *StudyItemRepository) Update(ctx context.Context, item *models.StudyItem) error {
	query := r.db.Rebind(`
		UPDATE study_items SET
			vocab_id = ?, word = ?, interval = ?, ease_factor = ?,
			repetitions = ?, next_review_ms = ?, last_review_ms = ?,
			difficulty = ?, quality = ?, correct_streak = ?,
			total_attempts = ?, correct_attempts = ?
		WHERE id = ?
	`)
	row := toStudyItemRow(item)
	result, err := r.db.ExecContext(ctx, query,
		row.VocabID, row.Word, row.Interval, row.EaseFactor, row.Repetitions,
		row.NextReviewMs, row.LastReviewMs, row.Difficulty, row.Quality,
		row.CorrectStreak, row.TotalAttempts, row.CorrectAttempts, row.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update study item: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", spaced_repetition.ErrItemNotFound, item.ID)
	}
	return nil
}

// Delete removes one study item. Deleting a missing id is a no-op.
func (r *StudyItemRepository) Delete(ctx context.Context, id string) error {
	query := r.db.Rebind("DELETE FROM study_items WHERE id = ?")
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete study item: %w", err)
	}
	return nil
}

// DeleteAll removes every study item
func (r *StudyItemRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM study_items"); err != nil {
		return fmt.Errorf("failed to clear study items: %w", err)
	}
	return nil
}
