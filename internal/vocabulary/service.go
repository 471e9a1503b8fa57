// Package vocabulary manages the user's saved words: the dictionary entries a
// learner has bookmarked, ahead of (or independent of) spaced-repetition
// enrollment.
package vocabulary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/vocabdrill/pkg/models"
)

// ErrVocabNotFound means an operation referenced an unknown vocabulary entry.
var ErrVocabNotFound = errors.New("vocabulary: entry not found")

// Store is the persistence contract for saved words.
type Store interface {
	Insert(ctx context.Context, entry *models.VocabEntry) error
	GetByID(ctx context.Context, id string) (*models.VocabEntry, error)
	GetByWord(ctx context.Context, word string) (*models.VocabEntry, error)
	GetAll(ctx context.Context) ([]models.VocabEntry, error)
	Update(ctx context.Context, entry *models.VocabEntry) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// Service provides saved-vocabulary CRUD over a Store.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a vocabulary service.
func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// SetClock replaces the wall-clock source, for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Save stores a new word. Saving a word that already exists returns the
// existing entry unchanged instead of creating a duplicate.
func (s *Service) Save(ctx context.Context, word, translation string, difficulty models.Difficulty) (*models.VocabEntry, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, fmt.Errorf("vocabulary: word must not be empty")
	}
	if difficulty == "" {
		difficulty = models.DifficultyMedium
	}
	if !difficulty.Valid() {
		return nil, fmt.Errorf("vocabulary: unknown difficulty %q", difficulty)
	}

	existing, err := s.store.GetByWord(ctx, word)
	if err != nil && !errors.Is(err, ErrVocabNotFound) {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	entry := &models.VocabEntry{
		ID:          uuid.NewString(),
		Word:        word,
		Translation: translation,
		Difficulty:  difficulty,
		Status:      models.VocabStatusSaved,
		AddedAt:     s.now(),
	}
	if err := s.store.Insert(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save %q: %w", word, err)
	}
	return entry, nil
}

// Get returns one saved entry by id.
func (s *Service) Get(ctx context.Context, id string) (*models.VocabEntry, error) {
	return s.store.GetByID(ctx, id)
}

// List returns all saved entries.
func (s *Service) List(ctx context.Context) ([]models.VocabEntry, error) {
	return s.store.GetAll(ctx)
}

// UpdateStatus moves an entry between saved, learning and mastered.
func (s *Service) UpdateStatus(ctx context.Context, id string, status models.VocabStatus) error {
	if !status.Valid() {
		return fmt.Errorf("vocabulary: unknown status %q", status)
	}
	entry, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	entry.Status = status
	return s.store.Update(ctx, entry)
}

// RecordScore stores the latest practice score for an entry.
func (s *Service) RecordScore(ctx context.Context, id string, score int) error {
	entry, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	entry.PracticeScore = score
	return s.store.Update(ctx, entry)
}

// Remove deletes one entry. Removing an unknown id is a no-op.
func (s *Service) Remove(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
