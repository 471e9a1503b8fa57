package spaced_repetition

import (
	"math"
	"time"

	"github.com/example/vocabdrill/pkg/models"
)

// SM2 implements the SuperMemo-2 algorithm for spaced repetition
type SM2 struct {
	// Quality ratings at or above this count as a successful recall
	PassThreshold int
	// Lower bound for the ease factor
	MinEaseFactor float64
	// Ease factor penalty applied on a failed review
	FailPenalty float64
}

// NewSM2 creates a new SM2 instance with the standard parameters
func NewSM2() *SM2 {
	return &SM2{
		PassThreshold: 3,
		MinEaseFactor: 1.3,
		FailPenalty:   0.2,
	}
}

// QualityResponse represents the quality of response in SM-2
type QualityResponse int

const (
	// Complete blackout, unable to recall
	QualityBlackout QualityResponse = 0
	// Incorrect response but remembered upon seeing the correct answer
	QualityIncorrect QualityResponse = 1
	// Incorrect response but the correct answer felt familiar
	QualityIncorrectFamiliar QualityResponse = 2
	// Correct response but required significant effort
	QualityCorrectDifficult QualityResponse = 3
	// Correct response after some hesitation
	QualityCorrectHesitation QualityResponse = 4
	// Perfect response with no hesitation
	QualityPerfect QualityResponse = 5
)

// IsPassing reports whether a quality rating counts as a correct recall.
// Session tallying must use the same predicate so the two can not drift.
func (sm *SM2) IsPassing(quality int) bool {
	return quality >= sm.PassThreshold
}

// Process applies one review outcome to the item. quality must already be
// validated to the 0-5 range; now is the review time.
func (sm *SM2) Process(item *models.StudyItem, quality, attempts int, now time.Time) {
	// Track cumulative attempt counters and the correct streak
	item.TotalAttempts += attempts
	if sm.IsPassing(quality) {
		item.CorrectAttempts++
		item.CorrectStreak++
	} else {
		item.CorrectStreak = 0
	}

	item.Quality = quality
	item.LastReviewDate = now
	item.Repetitions++

	if !sm.IsPassing(quality) {
		// Failed - reset the interval and penalize the ease factor. The
		// repetition count drops back by one, never below zero.
		item.Interval = 1
		if item.Repetitions > 0 {
			item.Repetitions--
		}
		item.EaseFactor = math.Max(sm.MinEaseFactor, item.EaseFactor-sm.FailPenalty)
	} else {
		// Passed - the first two successes use the fixed 1 and 3 day steps,
		// after that the interval grows by the current ease factor.
		switch {
		case item.Repetitions == 1:
			item.Interval = 1
		case item.Repetitions == 2:
			item.Interval = 3
		default:
			item.Interval = int(math.Round(float64(item.Interval) * item.EaseFactor))
		}

		// Classic SM-2 ease factor update, computed after the interval so the
		// new ease only affects the next review.
		shift := 0.1 - float64(5-quality)*(0.08+float64(5-quality)*0.02)
		item.EaseFactor = math.Max(sm.MinEaseFactor, item.EaseFactor+shift)
	}

	// Next review is interval whole days from the review time
	item.NextReview = now.Add(time.Duration(item.Interval) * 24 * time.Hour)
}

// IsMastered reports whether an item counts as mastered: it has survived at
// least 3 repetitions and the last recall was rated 4 or better.
func (sm *SM2) IsMastered(item *models.StudyItem) bool {
	return item.Repetitions >= 3 && item.Quality >= int(QualityCorrectHesitation)
}
