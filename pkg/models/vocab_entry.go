package models

import "time"

// VocabStatus describes where a saved word sits in the learning flow.
type VocabStatus string

const (
	VocabStatusSaved    VocabStatus = "saved"
	VocabStatusLearning VocabStatus = "learning"
	VocabStatusMastered VocabStatus = "mastered"
)

// Valid reports whether s is a known status.
func (s VocabStatus) Valid() bool {
	switch s {
	case VocabStatusSaved, VocabStatusLearning, VocabStatusMastered:
		return true
	}
	return false
}

// VocabEntry is a word the user saved from the dictionary.
type VocabEntry struct {
	ID            string      `json:"id" db:"id"`
	Word          string      `json:"word" db:"word"`
	Translation   string      `json:"translation" db:"translation"`
	Difficulty    Difficulty  `json:"difficulty" db:"difficulty"`
	Status        VocabStatus `json:"status" db:"status"`
	PracticeScore int         `json:"practice_score" db:"practice_score"`
	AddedAt       time.Time   `json:"added_at" db:"added_at"`
}
