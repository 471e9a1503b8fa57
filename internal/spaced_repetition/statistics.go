package spaced_repetition

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/example/vocabdrill/pkg/models"
)

// How long a computed statistics record may be served from cache
const statsCacheTTL = 60 * time.Second

// Mastery pace assumed when there is no session history to measure one from
const defaultDaysPerMastery = 7

const day = 24 * time.Hour

// SaveReviewSession appends a completed session to the history. The duration
// is recomputed from the start and end times at save time; an unset end time
// means the session is being closed right now.
func (s *Scheduler) SaveReviewSession(ctx context.Context, session *models.ReviewSession) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.UserID == "" {
		session.UserID = s.userID
	}

	end := s.now()
	if session.EndTime != nil {
		end = *session.EndTime
	}
	session.DurationMs = end.Sub(session.StartTime).Milliseconds()

	if err := s.sessions.Append(ctx, session); err != nil {
		return fmt.Errorf("failed to save review session: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// GetStatistics computes the aggregate study statistics. The result is cached
// for up to a minute; any write invalidates the cache immediately, so a
// cached record is only served while its store version still matches.
func (s *Scheduler) GetStatistics(ctx context.Context) (*models.Statistics, error) {
	now := s.now()

	if record, err := s.cache.Get(ctx); err == nil && record != nil {
		if record.Version == s.version && now.Sub(record.ComputedAt) < statsCacheTTL {
			stats := record.Stats
			return &stats, nil
		}
	}

	items, err := s.items.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessions.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := s.computeStatistics(items, sessions, now)

	// Best effort: statistics stay correct even if the cache write fails.
	_ = s.cache.Put(ctx, &models.StatsCacheRecord{
		Stats:      *stats,
		ComputedAt: now,
		Version:    s.version,
	})

	return stats, nil
}

func (s *Scheduler) computeStatistics(items []models.StudyItem, sessions []models.ReviewSession, now time.Time) *models.Statistics {
	stats := &models.Statistics{
		TotalItems:    len(items),
		TotalSessions: len(sessions),
	}

	for i := range items {
		if items[i].IsDue(now) {
			stats.DueToday++
		}
		if s.sm2.IsMastered(&items[i]) {
			stats.Mastered++
		}
	}

	var totalQuestions, totalCorrect int
	var totalTimeMs int64
	for _, sess := range sessions {
		totalQuestions += sess.TotalQuestions
		totalCorrect += sess.CorrectAnswers
		totalTimeMs += sess.DurationMs
	}
	if totalQuestions > 0 {
		stats.Accuracy = int(math.Round(float64(totalCorrect) / float64(totalQuestions) * 100))
		stats.AvgTimePerWordMs = int64(math.Round(float64(totalTimeMs) / float64(totalQuestions)))
	}

	if len(sessions) > 0 {
		last := sessions[len(sessions)-1]
		if last.EndTime != nil {
			stats.LastSessionDate = last.EndTime
			stats.StreakDays = int(now.Sub(*last.EndTime) / day)
		}
	}

	stats.ImprovementRate = improvementRate(sessions)

	if est := s.estimateMasteryDate(stats, sessions, now); est != nil {
		stats.EstimatedMasteryDate = est
	}

	return stats
}

// improvementRate compares mean per-session accuracy of the last five
// sessions against the first five.
func improvementRate(sessions []models.ReviewSession) int {
	if len(sessions) < 2 {
		return 0
	}

	window := len(sessions)
	if window > 5 {
		window = 5
	}

	recent := meanAccuracy(sessions[len(sessions)-window:], window)
	earlier := meanAccuracy(sessions[:window], window)
	if earlier == 0 {
		return 0
	}
	return int(math.Round((recent - earlier) / earlier * 100))
}

func meanAccuracy(sessions []models.ReviewSession, window int) float64 {
	var sum float64
	for _, sess := range sessions {
		if sess.TotalQuestions > 0 {
			sum += float64(sess.CorrectAnswers) / float64(sess.TotalQuestions)
		}
	}
	return sum / float64(window)
}

// estimateMasteryDate projects when the remaining items will be mastered at
// the historical pace. Returns nil when every item is already mastered. With
// no measurable pace (no sessions, or none mastered yet) it assumes the
// default days-per-mastery.
func (s *Scheduler) estimateMasteryDate(stats *models.Statistics, sessions []models.ReviewSession, now time.Time) *time.Time {
	if stats.Mastered >= stats.TotalItems {
		return nil
	}

	avgDaysPerMastery := defaultDaysPerMastery
	if len(sessions) > 0 && stats.Mastered > 0 {
		elapsed := now.Sub(sessions[0].StartTime).Hours() / 24
		avgDaysPerMastery = int(math.Round(elapsed / float64(stats.Mastered)))
	}

	unmastered := stats.TotalItems - stats.Mastered
	est := now.Add(time.Duration(unmastered*avgDaysPerMastery) * day)
	return &est
}

// GetPerformanceTrend buckets the last 7 days of sessions by calendar date
// and returns per-day accuracy in ascending date order. The trend is
// recomputed fresh on every call.
func (s *Scheduler) GetPerformanceTrend(ctx context.Context) ([]models.TrendPoint, error) {
	sessions, err := s.sessions.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := s.now().Add(-7 * day)

	type tally struct{ questions, correct int }
	byDay := make(map[string]*tally)
	for _, sess := range sessions {
		if sess.StartTime.Before(cutoff) {
			continue
		}
		date := sess.StartTime.UTC().Format("2006-01-02")
		t := byDay[date]
		if t == nil {
			t = &tally{}
			byDay[date] = t
		}
		t.questions += sess.TotalQuestions
		t.correct += sess.CorrectAnswers
	}

	trend := make([]models.TrendPoint, 0, len(byDay))
	for date, t := range byDay {
		accuracy := 0
		if t.questions > 0 {
			accuracy = int(math.Round(float64(t.correct) / float64(t.questions) * 100))
		}
		trend = append(trend, models.TrendPoint{Date: date, Accuracy: accuracy})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Date < trend[j].Date })

	return trend, nil
}
