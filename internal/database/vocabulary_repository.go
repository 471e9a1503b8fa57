package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/vocabdrill/internal/vocabulary"
	"github.com/example/vocabdrill/pkg/models"
)

// VocabularyRepository handles database operations for saved words
type VocabularyRepository struct {
	db *sqlx.DB
}

// NewVocabularyRepository creates a new repository instance
func NewVocabularyRepository(db *sqlx.DB) *VocabularyRepository {
	return &VocabularyRepository{db: db}
}

type vocabRow struct {
	ID            string `db:"id"`
	Word          string `db:"word"`
	Translation   string `db:"translation"`
	Difficulty    string `db:"difficulty"`
	Status        string `db:"status"`
	PracticeScore int    `db:"practice_score"`
	AddedAtMs     int64  `db:"added_at_ms"`
}

func (r vocabRow) toModel() models.VocabEntry {
	return models.VocabEntry{
		ID:            r.ID,
		Word:          r.Word,
		Translation:   r.Translation,
		Difficulty:    models.Difficulty(r.Difficulty),
		Status:        models.VocabStatus(r.Status),
		PracticeScore: r.PracticeScore,
		AddedAt:       time.UnixMilli(r.AddedAtMs).UTC(),
	}
}

// Insert persists a new vocabulary entry
func (r *VocabularyRepository) Insert(ctx context.Context, entry *models.VocabEntry) error {
	query := r.db.Rebind(`
		INSERT INTO vocabulary (
			id, word, translation, difficulty, status, practice_score, added_at_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.Word, entry.Translation, string(entry.Difficulty),
		string(entry.Status), entry.PracticeScore, entry.AddedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert vocabulary entry: %w", err)
	}
	return nil
}

// GetByID returns one entry by id
func (r *VocabularyRepository) GetByID(ctx context.Context, id string) (*models.VocabEntry, error) {
	return r.getOne(ctx, "SELECT * FROM vocabulary WHERE id = ?", id)
}

// GetByWord returns one entry by its word
func (r *VocabularyRepository) GetByWord(ctx context.Context, word string) (*models.VocabEntry, error) {
	return r.getOne(ctx, "SELECT * FROM vocabulary WHERE word = ?", word)
}

func (r *VocabularyRepository) getOne(ctx context.Context, query, arg string) (*models.VocabEntry, error) {
	var row vocabRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(query), arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", vocabulary.ErrVocabNotFound, arg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vocabulary entry: %w", err)
	}
	entry := row.toModel()
	return &entry, nil
}

// GetAll returns all saved words ordered alphabetically
func (r *VocabularyRepository) GetAll(ctx context.Context) ([]models.VocabEntry, error) {
	var rows []vocabRow
	err := r.db.SelectContext(ctx, &rows, "SELECT * FROM vocabulary ORDER BY word")
	if err != nil {
		return nil, fmt.Errorf("failed to get vocabulary: %w", err)
	}
	entries := make([]models.VocabEntry, len(rows))
	for i, row := range rows {
		entries[i] = row.toModel()
	}
	return entries, nil
}

// Update writes one entry keyed by id
func (r *VocabularyRepository) Update(ctx context.Context, entry *models.VocabEntry) error {
	query := r.db.Rebind(`
		UPDATE vocabulary SET
			word = ?, translation = ?, difficulty = ?,
			status = ?, practice_score = ?
		WHERE id = ?
	`)
	result, err := r.db.ExecContext(ctx, query,
		entry.Word, entry.Translation, string(entry.Difficulty),
		string(entry.Status), entry.PracticeScore, entry.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update vocabulary entry: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", vocabulary.ErrVocabNotFound, entry.ID)
	}
	return nil
}

// Delete removes one entry. Deleting a missing id is a no-op.
func (r *VocabularyRepository) Delete(ctx context.Context, id string) error {
	query := r.db.Rebind("DELETE FROM vocabulary WHERE id = ?")
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete vocabulary entry: %w", err)
	}
	return nil
}

// DeleteAll removes every entry
func (r *VocabularyRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM vocabulary"); err != nil {
		return fmt.Errorf("failed to clear vocabulary: %w", err)
	}
	return nil
}
