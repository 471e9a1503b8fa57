package spaced_repetition

import (
	"math"
	"testing"
	"time"

	"github.com/example/vocabdrill/pkg/models"
)

const epsilon = 1e-9

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %.6f, want %.6f", name, got, want)
	}
}

func freshItem(now time.Time) *models.StudyItem {
	return &models.StudyItem{
		ID:             "item-1",
		VocabID:        "vocab-1",
		Word:           "serendipity",
		Interval:       1,
		EaseFactor:     2.5,
		NextReview:     now,
		LastReviewDate: now,
		Difficulty:     models.DifficultyMedium,
	}
}

func TestFirstTwoPassesUseFixedSteps(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	sm := NewSM2()

	// The first two successful reviews must land on 1 then 3 days no matter
	// what the quality (and therefore the ease factor) is.
	for quality := 3; quality <= 5; quality++ {
		item := freshItem(now)

		sm.Process(item, quality, 1, now)
		if item.Interval != 1 {
			t.Errorf("quality %d: first pass interval = %d, want 1", quality, item.Interval)
		}
		if item.Repetitions != 1 {
			t.Errorf("quality %d: first pass repetitions = %d, want 1", quality, item.Repetitions)
		}

		sm.Process(item, quality, 1, now.Add(24*time.Hour))
		if item.Interval != 3 {
			t.Errorf("quality %d: second pass interval = %d, want 3", quality, item.Interval)
		}
		if item.Repetitions != 2 {
			t.Errorf("quality %d: second pass repetitions = %d, want 2", quality, item.Repetitions)
		}
	}
}

func TestPerfectReviewSequence(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	sm := NewSM2()
	item := freshItem(now)

	// First perfect recall: +0.1 ease, interval stays at the 1-day step.
	sm.Process(item, 5, 1, now)
	if item.Repetitions != 1 || item.Interval != 1 {
		t.Fatalf("after first review: repetitions=%d interval=%d, want 1 and 1", item.Repetitions, item.Interval)
	}
	assertFloat(t, "ease after first review", item.EaseFactor, 2.6)
	if want := now.Add(24 * time.Hour); !item.NextReview.Equal(want) {
		t.Errorf("next review = %v, want %v", item.NextReview, want)
	}

	// Second perfect recall: the fixed 3-day step.
	second := now.Add(24 * time.Hour)
	sm.Process(item, 5, 1, second)
	if item.Repetitions != 2 || item.Interval != 3 {
		t.Fatalf("after second review: repetitions=%d interval=%d, want 2 and 3", item.Repetitions, item.Interval)
	}
	assertFloat(t, "ease after second review", item.EaseFactor, 2.7)
	if want := second.Add(3 * 24 * time.Hour); !item.NextReview.Equal(want) {
		t.Errorf("next review = %v, want %v", item.NextReview, want)
	}

	// Third recall grows by the ease factor in force before this review:
	// round(3 * 2.7) = 8.
	sm.Process(item, 5, 1, second.Add(3*24*time.Hour))
	if item.Interval != 8 {
		t.Errorf("after third review: interval = %d, want 8", item.Interval)
	}
	assertFloat(t, "ease after third review", item.EaseFactor, 2.8)
}

func TestQualityFourLeavesEaseUnchanged(t *testing.T) {
	// shift for quality 4 is 0.1 - 1*(0.08 + 1*0.02) = 0
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	sm := NewSM2()
	item := freshItem(now)

	sm.Process(item, 4, 1, now)
	assertFloat(t, "ease after quality 4", item.EaseFactor, 2.5)
}

func TestFailedReviewResetsProgress(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	sm := NewSM2()
	item := freshItem(now)
	item.Interval = 15
	item.Repetitions = 4
	item.EaseFactor = 2.1
	item.CorrectStreak = 4

	sm.Process(item, 1, 2, now)

	if item.Interval != 1 {
		t.Errorf("interval = %d, want 1", item.Interval)
	}
	// Incremented for the review, then decremented by the failure.
	if item.Repetitions != 4 {
		t.Errorf("repetitions = %d, want 4", item.Repetitions)
	}
	assertFloat(t, "ease after failure", item.EaseFactor, 1.9)
	if item.CorrectStreak != 0 {
		t.Errorf("correct streak = %d, want 0", item.CorrectStreak)
	}
	if item.TotalAttempts != 2 {
		t.Errorf("total attempts = %d, want 2", item.TotalAttempts)
	}
	if item.CorrectAttempts != 0 {
		t.Errorf("correct attempts = %d, want 0", item.CorrectAttempts)
	}
	if want := now.Add(24 * time.Hour); !item.NextReview.Equal(want) {
		t.Errorf("next review = %v, want %v", item.NextReview, want)
	}
}

func TestFailureOnFreshItemKeepsRepetitionsAtZero(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	sm := NewSM2()
	item := freshItem(now)

	sm.Process(item, 0, 1, now)
	if item.Repetitions != 0 {
		t.Errorf("repetitions = %d, want 0", item.Repetitions)
	}
}

func TestEaseFactorNeverDropsBelowFloor(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	sm := NewSM2()
	item := freshItem(now)

	for i := 0; i < 20; i++ {
		sm.Process(item, 0, 1, now.Add(time.Duration(i)*24*time.Hour))
		if item.EaseFactor < 1.3-epsilon {
			t.Fatalf("review %d: ease factor %.4f dropped below 1.3", i+1, item.EaseFactor)
		}
	}
	assertFloat(t, "ease after repeated failures", item.EaseFactor, 1.3)
}

func TestCorrectStreakTracksConsecutivePasses(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	sm := NewSM2()
	item := freshItem(now)

	sm.Process(item, 5, 1, now)
	sm.Process(item, 3, 1, now)
	if item.CorrectStreak != 2 {
		t.Errorf("streak after two passes = %d, want 2", item.CorrectStreak)
	}

	sm.Process(item, 2, 1, now)
	if item.CorrectStreak != 0 {
		t.Errorf("streak after failure = %d, want 0", item.CorrectStreak)
	}
	if item.CorrectAttempts != 2 {
		t.Errorf("correct attempts = %d, want 2", item.CorrectAttempts)
	}
}

func TestIsMastered(t *testing.T) {
	sm := NewSM2()
	item := &models.StudyItem{Repetitions: 3, Quality: 4}
	if !sm.IsMastered(item) {
		t.Error("3 repetitions at quality 4 should be mastered")
	}
	item = &models.StudyItem{Repetitions: 2, Quality: 5}
	if sm.IsMastered(item) {
		t.Error("2 repetitions should not be mastered")
	}
	item = &models.StudyItem{Repetitions: 5, Quality: 3}
	if sm.IsMastered(item) {
		t.Error("last quality 3 should not be mastered")
	}
}
