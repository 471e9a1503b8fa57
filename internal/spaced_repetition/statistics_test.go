package spaced_repetition

import (
	"context"
	"testing"
	"time"

	"github.com/example/vocabdrill/pkg/models"
)

func saveSession(t *testing.T, s *Scheduler, start, end time.Time, total, correct int) {
	t.Helper()
	session := &models.ReviewSession{
		StartTime:      start,
		EndTime:        &end,
		Mode:           string(ModeStandard),
		TotalQuestions: total,
		CorrectAnswers: correct,
	}
	if err := s.SaveReviewSession(context.Background(), session); err != nil {
		t.Fatalf("SaveReviewSession: %v", err)
	}
}

func TestAccuracyWithoutSessionsIsZero(t *testing.T) {
	s, _ := newTestScheduler(t)
	stats, err := s.GetStatistics(context.Background())
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if stats.Accuracy != 0 {
		t.Errorf("accuracy = %d, want 0", stats.Accuracy)
	}
	if stats.TotalSessions != 0 || stats.AvgTimePerWordMs != 0 {
		t.Errorf("sessions=%d avgTime=%d, want 0 and 0", stats.TotalSessions, stats.AvgTimePerWordMs)
	}
	if stats.LastSessionDate != nil {
		t.Error("last session date should be nil with no sessions")
	}
}

func TestAccuracyAfterOneSession(t *testing.T) {
	s, clock := newTestScheduler(t)
	start := clock.Now().Add(-10 * time.Minute)
	saveSession(t, s, start, clock.Now(), 10, 7)

	stats, err := s.GetStatistics(context.Background())
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if stats.Accuracy != 70 {
		t.Errorf("accuracy = %d, want 70", stats.Accuracy)
	}
	if stats.TotalSessions != 1 {
		t.Errorf("total sessions = %d, want 1", stats.TotalSessions)
	}
	// 10 minutes over 10 questions = 1 minute per word.
	if want := int64(60 * 1000); stats.AvgTimePerWordMs != want {
		t.Errorf("avg time per word = %dms, want %dms", stats.AvgTimePerWordMs, want)
	}
}

func TestSaveSessionComputesDuration(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestScheduler(t)

	// Explicit end time wins.
	start := clock.Now().Add(-5 * time.Minute)
	end := clock.Now().Add(-time.Minute)
	saveSession(t, s, start, end, 5, 5)

	// Without an end time the session closes at save time.
	open := &models.ReviewSession{
		StartTime:      clock.Now().Add(-2 * time.Minute),
		Mode:           string(ModeQuick),
		TotalQuestions: 3,
		CorrectAnswers: 2,
	}
	if err := s.SaveReviewSession(ctx, open); err != nil {
		t.Fatalf("SaveReviewSession: %v", err)
	}

	sessions, err := s.sessions.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if want := (4 * time.Minute).Milliseconds(); sessions[0].DurationMs != want {
		t.Errorf("closed session duration = %dms, want %dms", sessions[0].DurationMs, want)
	}
	if want := (2 * time.Minute).Milliseconds(); sessions[1].DurationMs != want {
		t.Errorf("open session duration = %dms, want %dms", sessions[1].DurationMs, want)
	}
	if sessions[0].ID == "" || sessions[1].ID == "" {
		t.Error("saved sessions should have generated ids")
	}
	if sessions[0].UserID != DefaultUserID {
		t.Errorf("user id = %q, want %q", sessions[0].UserID, DefaultUserID)
	}
}

func TestStreakDaysSinceLastSession(t *testing.T) {
	s, clock := newTestScheduler(t)
	end := clock.Now()
	saveSession(t, s, end.Add(-10*time.Minute), end, 5, 5)

	clock.Advance(3*24*time.Hour + time.Hour)

	stats, err := s.GetStatistics(context.Background())
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if stats.StreakDays != 3 {
		t.Errorf("streak days = %d, want 3", stats.StreakDays)
	}
	if stats.LastSessionDate == nil || !stats.LastSessionDate.Equal(end) {
		t.Errorf("last session date = %v, want %v", stats.LastSessionDate, end)
	}
}

func TestMasteredCount(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestScheduler(t)

	// Three perfect reviews make an item mastered.
	mastered, err := s.AddToStudyQueue(ctx, "vocab", "known", models.DifficultyMedium)
	if err != nil {
		t.Fatalf("AddToStudyQueue: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := s.RecordReview(ctx, mastered.ID, 5, 1000, 1); err != nil {
			t.Fatalf("RecordReview: %v", err)
		}
		clock.Advance(10 * 24 * time.Hour)
	}
	if _, err := s.AddToStudyQueue(ctx, "vocab", "new", models.DifficultyMedium); err != nil {
		t.Fatalf("AddToStudyQueue: %v", err)
	}

	stats, err := s.GetStatistics(ctx)
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if stats.TotalItems != 2 {
		t.Errorf("total items = %d, want 2", stats.TotalItems)
	}
	if stats.Mastered != 1 {
		t.Errorf("mastered = %d, want 1", stats.Mastered)
	}
}

func TestImprovementRateNeedsTwoSessions(t *testing.T) {
	s, clock := newTestScheduler(t)
	saveSession(t, s, clock.Now(), clock.Now(), 10, 5)

	stats, err := s.GetStatistics(context.Background())
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if stats.ImprovementRate != 0 {
		t.Errorf("improvement rate with one session = %d, want 0", stats.ImprovementRate)
	}
}

func TestImprovementRateComparesWindows(t *testing.T) {
	s, clock := newTestScheduler(t)

	// Five sessions at 50%, then one at 100%: the early window mean is 0.5,
	// the recent window mean is (4*0.5 + 1.0)/5 = 0.6, so +20%.
	for i := 0; i < 5; i++ {
		saveSession(t, s, clock.Now(), clock.Now(), 10, 5)
		clock.Advance(time.Hour)
	}
	saveSession(t, s, clock.Now(), clock.Now(), 10, 10)

	stats, err := s.GetStatistics(context.Background())
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if stats.ImprovementRate != 20 {
		t.Errorf("improvement rate = %d, want 20", stats.ImprovementRate)
	}
}

func TestEstimatedMasteryDateDefaultPace(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestScheduler(t)

	// Two unmastered items and no history: assume the default pace of 7 days
	// per item.
	for i := 0; i < 2; i++ {
		if _, err := s.AddToStudyQueue(ctx, "vocab", "word", models.DifficultyMedium); err != nil {
			t.Fatalf("AddToStudyQueue: %v", err)
		}
	}

	stats, err := s.GetStatistics(ctx)
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if stats.EstimatedMasteryDate == nil {
		t.Fatal("expected a mastery estimate")
	}
	if want := clock.Now().Add(14 * 24 * time.Hour); !stats.EstimatedMasteryDate.Equal(want) {
		t.Errorf("estimated mastery = %v, want %v", stats.EstimatedMasteryDate, want)
	}
}

func TestEstimatedMasteryDateUsesDefaultPaceWhenNoneMastered(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestScheduler(t)

	if _, err := s.AddToStudyQueue(ctx, "vocab", "word", models.DifficultyMedium); err != nil {
		t.Fatalf("AddToStudyQueue: %v", err)
	}
	// Sessions exist but nothing is mastered yet: there is no measurable
	// pace, so the default applies instead of a division by zero.
	saveSession(t, s, clock.Now(), clock.Now(), 10, 5)

	stats, err := s.GetStatistics(ctx)
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if stats.EstimatedMasteryDate == nil {
		t.Fatal("expected a mastery estimate")
	}
	if want := clock.Now().Add(7 * 24 * time.Hour); !stats.EstimatedMasteryDate.Equal(want) {
		t.Errorf("estimated mastery = %v, want %v", stats.EstimatedMasteryDate, want)
	}
}

func TestEstimatedMasteryDateNilWhenEverythingMastered(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestScheduler(t)

	item, err := s.AddToStudyQueue(ctx, "vocab", "word", models.DifficultyMedium)
	if err != nil {
		t.Fatalf("AddToStudyQueue: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := s.RecordReview(ctx, item.ID, 5, 1000, 1); err != nil {
			t.Fatalf("RecordReview: %v", err)
		}
		clock.Advance(10 * 24 * time.Hour)
	}

	stats, err := s.GetStatistics(ctx)
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if stats.Mastered != 1 || stats.TotalItems != 1 {
		t.Fatalf("mastered=%d total=%d, want 1 and 1", stats.Mastered, stats.TotalItems)
	}
	if stats.EstimatedMasteryDate != nil {
		t.Errorf("estimated mastery = %v, want nil", stats.EstimatedMasteryDate)
	}
}

func TestStatisticsCacheServedWithinTTL(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestScheduler(t)
	saveSession(t, s, clock.Now(), clock.Now(), 10, 7)

	if _, err := s.GetStatistics(ctx); err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}

	// Write to the session store behind the scheduler's back: no version
	// bump, so within the TTL the cached value is served as-is.
	end := clock.Now()
	if err := s.sessions.Append(ctx, &models.ReviewSession{
		ID: "sneaky", UserID: DefaultUserID, StartTime: end, EndTime: &end,
		Mode: string(ModeQuick), TotalQuestions: 10, CorrectAnswers: 0,
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	stats, err := s.GetStatistics(ctx)
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if stats.Accuracy != 70 {
		t.Errorf("accuracy = %d, want cached 70", stats.Accuracy)
	}

	// Past the TTL the cache expires and the new session is visible.
	clock.Advance(61 * time.Second)
	stats, err = s.GetStatistics(ctx)
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if stats.Accuracy != 35 {
		t.Errorf("accuracy after TTL = %d, want 35", stats.Accuracy)
	}
}

func TestStatisticsCacheInvalidatedByWrites(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestScheduler(t)
	saveSession(t, s, clock.Now(), clock.Now(), 10, 7)

	stats, err := s.GetStatistics(ctx)
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if stats.Accuracy != 70 {
		t.Fatalf("accuracy = %d, want 70", stats.Accuracy)
	}

	// A write through the scheduler invalidates immediately, well inside the
	// TTL. Correctness beats staleness.
	saveSession(t, s, clock.Now(), clock.Now(), 10, 0)

	stats, err = s.GetStatistics(ctx)
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if stats.Accuracy != 35 {
		t.Errorf("accuracy after write = %d, want 35", stats.Accuracy)
	}
}

func TestPerformanceTrendBucketsByDay(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestScheduler(t)
	now := clock.Now()

	// Ten days ago: outside the window, excluded.
	old := now.Add(-10 * 24 * time.Hour)
	saveSession(t, s, old, old, 10, 1)

	// Two days ago, two sessions on the same calendar day.
	dayBefore := now.Add(-2 * 24 * time.Hour)
	saveSession(t, s, dayBefore, dayBefore, 10, 6)
	saveSession(t, s, dayBefore.Add(time.Hour), dayBefore.Add(time.Hour), 10, 8)

	// Yesterday.
	yesterday := now.Add(-24 * time.Hour)
	saveSession(t, s, yesterday, yesterday, 10, 9)

	trend, err := s.GetPerformanceTrend(ctx)
	if err != nil {
		t.Fatalf("GetPerformanceTrend: %v", err)
	}
	if len(trend) != 2 {
		t.Fatalf("trend length = %d, want 2", len(trend))
	}

	wantFirst := dayBefore.UTC().Format("2006-01-02")
	if trend[0].Date != wantFirst {
		t.Errorf("first bucket date = %s, want %s", trend[0].Date, wantFirst)
	}
	// (6+8)/20 = 70%
	if trend[0].Accuracy != 70 {
		t.Errorf("first bucket accuracy = %d, want 70", trend[0].Accuracy)
	}
	if trend[1].Accuracy != 90 {
		t.Errorf("second bucket accuracy = %d, want 90", trend[1].Accuracy)
	}
	if trend[0].Date >= trend[1].Date {
		t.Error("trend is not in ascending date order")
	}
}
