package models

import "time"

// Statistics summarizes a user's study progress. It is derived from the
// study-item store and the session history, never persisted as a source of
// truth.
type Statistics struct {
	DueToday             int        `json:"due_today"`
	TotalItems           int        `json:"total_items"`
	Mastered             int        `json:"mastered"`
	Accuracy             int        `json:"accuracy"` // percent across all sessions
	TotalSessions        int        `json:"total_sessions"`
	LastSessionDate      *time.Time `json:"last_session_date"`
	StreakDays           int        `json:"streak_days"` // whole days since the last session ended
	AvgTimePerWordMs     int64      `json:"avg_time_per_word"`
	ImprovementRate      int        `json:"improvement_rate"` // percent change, recent vs early sessions
	EstimatedMasteryDate *time.Time `json:"estimated_mastery_date"`
}

// TrendPoint is one day of the 7-day performance trend.
type TrendPoint struct {
	Date     string `json:"date"` // calendar date, YYYY-MM-DD
	Accuracy int    `json:"accuracy"`
}

// StatsCacheRecord is the persisted statistics cache: the computed value plus
// the store version and time it was computed at.
type StatsCacheRecord struct {
	Stats      Statistics `json:"stats"`
	ComputedAt time.Time  `json:"computed_at"`
	Version    uint64     `json:"version"`
}
