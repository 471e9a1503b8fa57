package spaced_repetition

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/example/vocabdrill/pkg/models"
)

// Mode selects how a study queue is built.
type Mode string

const (
	// ModeQuick is a short session of the 5 most overdue items
	ModeQuick Mode = "quick"
	// ModeStandard is the default session of up to 10 due items
	ModeStandard Mode = "standard"
	// ModeFocused prefers hard or low-accuracy due items, up to 5
	ModeFocused Mode = "focused"
)

// Queue size caps per mode
const (
	quickLimit    = 5
	standardLimit = 10
	focusedLimit  = 5
)

// Items below this accuracy count as struggling in focused mode
const focusedAccuracyThreshold = 0.6

// DefaultUserID identifies the single local user.
const DefaultUserID = "local"

func (m Mode) limit() (int, bool) {
	switch m {
	case ModeQuick:
		return quickLimit, true
	case ModeStandard:
		return standardLimit, true
	case ModeFocused:
		return focusedLimit, true
	}
	return 0, false
}

// Scheduler is the review scheduling service: it owns enrollment, SM-2 review
// processing, due-queue selection, session history and derived statistics.
// Callers are responsible for serializing concurrent invocations; each public
// method completes its own writes before returning.
type Scheduler struct {
	items    ItemStore
	sessions SessionStore
	cache    CacheStore
	sm2      *SM2
	userID   string

	// version increases on every write; a cached statistics record is only
	// valid while its version matches.
	version uint64

	now func() time.Time
}

// NewScheduler creates a scheduler over the given stores.
func NewScheduler(items ItemStore, sessions SessionStore, cache CacheStore) *Scheduler {
	return &Scheduler{
		items:    items,
		sessions: sessions,
		cache:    cache,
		sm2:      NewSM2(),
		userID:   DefaultUserID,
		now:      defaultClock,
	}
}

// defaultClock truncates to millisecond precision so stored timestamps
// round-trip exactly through the millisecond-resolution storage layout.
func defaultClock() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// SetClock replaces the wall-clock source. Used by tests for deterministic
// scheduling.
func (s *Scheduler) SetClock(now func() time.Time) {
	s.now = now
}

// AddToStudyQueue enrolls a word for spaced-repetition review with the SM-2
// starting state. An empty difficulty defaults to medium.
func (s *Scheduler) AddToStudyQueue(ctx context.Context, vocabID, word string, difficulty models.Difficulty) (*models.StudyItem, error) {
	if difficulty == "" {
		difficulty = models.DifficultyMedium
	}
	if !difficulty.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDifficulty, difficulty)
	}

	now := s.now()
	item := &models.StudyItem{
		ID:             uuid.NewString(),
		VocabID:        vocabID,
		Word:           word,
		Interval:       1,
		EaseFactor:     2.5,
		Repetitions:    0,
		NextReview:     now,
		LastReviewDate: now,
		Difficulty:     difficulty,
		Quality:        0,
	}

	if err := s.items.Insert(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to enroll %q: %w", word, err)
	}
	s.invalidate(ctx)
	return item, nil
}

// RecordReview applies one review outcome to a study item, persists the
// updated item and returns it. quality must be an integer in 0-5; violations
// are rejected before any state changes.
func (s *Scheduler) RecordReview(ctx context.Context, itemID string, quality int, timeSpentMs int64, attempts int) (*models.StudyItem, error) {
	if quality < 0 || quality > 5 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuality, quality)
	}
	_ = timeSpentMs // recorded per-question in session results, not used by SM-2

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	s.sm2.Process(item, quality, attempts, s.now())

	if err := s.items.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save review for %q: %w", item.Word, err)
	}
	s.invalidate(ctx)
	return item, nil
}

// GetStudyQueue returns the due items for one practice session, most overdue
// first, capped by mode. An empty result means nothing is due.
func (s *Scheduler) GetStudyQueue(ctx context.Context, mode Mode) ([]models.StudyItem, error) {
	limit, ok := mode.limit()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	all, err := s.items.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	due := make([]models.StudyItem, 0, len(all))
	for _, item := range all {
		if item.IsDue(now) {
			due = append(due, item)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].NextReview.Before(due[j].NextReview)
	})

	if mode == ModeFocused {
		// Prefer genuinely hard material: hard-labelled words or ones the
		// user keeps getting wrong. Fall back to the plain due slice so a
		// non-empty due set never produces an empty queue.
		hard := make([]models.StudyItem, 0, limit)
		for _, item := range due {
			if item.Difficulty == models.DifficultyHard || item.AccuracyRate() < focusedAccuracyThreshold {
				hard = append(hard, item)
				if len(hard) == limit {
					break
				}
			}
		}
		if len(hard) > 0 {
			return hard, nil
		}
	}

	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

// DueCount returns how many items are due right now, regardless of mode caps.
func (s *Scheduler) DueCount(ctx context.Context) (int, error) {
	all, err := s.items.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	now := s.now()
	count := 0
	for _, item := range all {
		if item.IsDue(now) {
			count++
		}
	}
	return count, nil
}

// GetAll returns every tracked study item in storage order.
func (s *Scheduler) GetAll(ctx context.Context) ([]models.StudyItem, error) {
	return s.items.GetAll(ctx)
}

// Remove deletes one item from the study queue. Removing an unknown id is a
// no-op.
func (s *Scheduler) Remove(ctx context.Context, itemID string) error {
	if err := s.items.Delete(ctx, itemID); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// ClearAll wipes all study data: items, session history and the statistics
// cache.
func (s *Scheduler) ClearAll(ctx context.Context) error {
	if err := s.items.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.sessions.DeleteAll(ctx); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// invalidate bumps the store version and drops the persisted cache record.
// The version bump alone makes any cached statistics stale; clearing the
// record is just cleanup, so its failure is not fatal.
func (s *Scheduler) invalidate(ctx context.Context) {
	s.version++
	_ = s.cache.Clear(ctx)
}
