package models

import "time"

// ReviewSession records one completed practice session. Sessions are
// append-only: once saved they are never mutated.
type ReviewSession struct {
	ID             string         `json:"id" db:"id"`
	UserID         string         `json:"user_id" db:"user_id"`
	StartTime      time.Time      `json:"start_time" db:"start_time"`
	EndTime        *time.Time     `json:"end_time" db:"end_time"`
	Mode           string         `json:"mode" db:"mode"` // quick, standard or focused
	TotalQuestions int            `json:"total_questions" db:"total_questions"`
	CorrectAnswers int            `json:"correct_answers" db:"correct_answers"`
	Results        []ReviewResult `json:"results"`
	DurationMs     int64          `json:"duration" db:"duration_ms"` // recomputed at save time
}

// ReviewResult is one answered question inside a session. Results live only
// inside their parent session and are not independently addressable.
type ReviewResult struct {
	StudyItemID   string `json:"study_item_id"`
	Word          string `json:"word"`
	Quality       int    `json:"quality"` // 0-5
	TimeSpentMs   int64  `json:"time_spent"`
	Attempts      int    `json:"attempts"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
}
