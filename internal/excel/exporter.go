package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/example/vocabdrill/internal/spaced_repetition"
)

// Exporter writes a progress workbook: one sheet with every tracked item and
// one with the aggregate statistics.
type Exporter struct {
	scheduler *spaced_repetition.Scheduler
}

// NewExporter creates an exporter over the scheduler.
func NewExporter(scheduler *spaced_repetition.Scheduler) *Exporter {
	return &Exporter{scheduler: scheduler}
}

// Export writes the progress report to path.
func (e *Exporter) Export(ctx context.Context, path string) error {
	items, err := e.scheduler.GetAll(ctx)
	if err != nil {
		return err
	}
	stats, err := e.scheduler.GetStatistics(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	const itemSheet = "Progress"
	f.SetSheetName("Sheet1", itemSheet)

	headers := []string{"Word", "Difficulty", "Interval (days)", "Ease Factor",
		"Repetitions", "Correct Streak", "Accuracy", "Next Review", "Last Review"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(itemSheet, col+"1", h)
	}

	for i, item := range items {
		row := i + 2
		f.SetCellValue(itemSheet, fmt.Sprintf("A%d", row), item.Word)
		f.SetCellValue(itemSheet, fmt.Sprintf("B%d", row), string(item.Difficulty))
		f.SetCellValue(itemSheet, fmt.Sprintf("C%d", row), item.Interval)
		f.SetCellValue(itemSheet, fmt.Sprintf("D%d", row), item.EaseFactor)
		f.SetCellValue(itemSheet, fmt.Sprintf("E%d", row), item.Repetitions)
		f.SetCellValue(itemSheet, fmt.Sprintf("F%d", row), item.CorrectStreak)
		f.SetCellValue(itemSheet, fmt.Sprintf("G%d", row), fmt.Sprintf("%.0f%%", item.AccuracyRate()*100))
		f.SetCellValue(itemSheet, fmt.Sprintf("H%d", row), item.NextReview.Format("2006-01-02 15:04"))
		f.SetCellValue(itemSheet, fmt.Sprintf("I%d", row), item.LastReviewDate.Format("2006-01-02 15:04"))
	}

	const statsSheet = "Statistics"
	if _, err := f.NewSheet(statsSheet); err != nil {
		return fmt.Errorf("failed to create statistics sheet: %w", err)
	}

	lines := [][2]interface{}{
		{"Due today", stats.DueToday},
		{"Total items", stats.TotalItems},
		{"Mastered", stats.Mastered},
		{"Accuracy", fmt.Sprintf("%d%%", stats.Accuracy)},
		{"Total sessions", stats.TotalSessions},
		{"Days since last session", stats.StreakDays},
		{"Avg time per word (ms)", stats.AvgTimePerWordMs},
		{"Improvement rate", fmt.Sprintf("%d%%", stats.ImprovementRate)},
	}
	if stats.LastSessionDate != nil {
		lines = append(lines, [2]interface{}{"Last session", stats.LastSessionDate.Format("2006-01-02 15:04")})
	}
	if stats.EstimatedMasteryDate != nil {
		lines = append(lines, [2]interface{}{"Estimated mastery", stats.EstimatedMasteryDate.Format("2006-01-02")})
	}
	for i, line := range lines {
		row := i + 1
		f.SetCellValue(statsSheet, fmt.Sprintf("A%d", row), line[0])
		f.SetCellValue(statsSheet, fmt.Sprintf("B%d", row), line[1])
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save progress report: %w", err)
	}
	return nil
}
