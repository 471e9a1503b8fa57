package models

import "time"

// Difficulty is the static difficulty label assigned to a word when it is
// saved or enrolled.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulty labels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// StudyItem tracks one word under spaced-repetition review using the SM-2 algorithm
type StudyItem struct {
	ID              string     `json:"id" db:"id"`
	VocabID         string     `json:"vocab_id" db:"vocab_id"`                 // back-reference to the saved vocabulary entry
	Word            string     `json:"word" db:"word"`
	Interval        int        `json:"interval" db:"interval"`                 // current interval in days
	EaseFactor      float64    `json:"ease_factor" db:"ease_factor"`           // SM-2 EF parameter, floor 1.3
	Repetitions     int        `json:"repetitions" db:"repetitions"`           // consecutive successful reviews
	NextReview      time.Time  `json:"next_review" db:"next_review"`
	LastReviewDate  time.Time  `json:"last_review_date" db:"last_review_date"`
	Difficulty      Difficulty `json:"difficulty" db:"difficulty"`
	Quality         int        `json:"quality" db:"quality"`                   // 0-5 rating of last recall
	CorrectStreak   int        `json:"correct_streak" db:"correct_streak"`     // consecutive correct recalls
	TotalAttempts   int        `json:"total_attempts" db:"total_attempts"`
	CorrectAttempts int        `json:"correct_attempts" db:"correct_attempts"`
}

// IsDue reports whether the item is due for review at the given time.
func (s *StudyItem) IsDue(now time.Time) bool {
	return !s.NextReview.After(now)
}

// AccuracyRate returns the fraction of correct attempts, 0 for a fresh item.
func (s *StudyItem) AccuracyRate() float64 {
	if s.TotalAttempts < 1 {
		return 0
	}
	return float64(s.CorrectAttempts) / float64(s.TotalAttempts)
}
