package excel

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/vocabdrill/internal/spaced_repetition"
	"github.com/example/vocabdrill/internal/vocabulary"
	"github.com/example/vocabdrill/pkg/models"
)

// ImportConfig defines how a vocabulary sheet is read
type ImportConfig struct {
	FilePath  string // Path to the Excel file
	SheetName string // Name of the sheet to import
	StartRow  int    // The row to start importing from (1-based index)
	Enroll    bool   // Also enroll imported words into the study queue
}

// DefaultImportConfig returns the default import configuration. Columns are
// fixed: A = word, B = translation, C = difficulty.
func DefaultImportConfig(path string) ImportConfig {
	return ImportConfig{
		FilePath:  path,
		SheetName: "Sheet1",
		StartRow:  2, // skip the header row
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Saved          int
	Skipped        int
	Enrolled       int
	Errors         []string
}

// Importer loads vocabulary lists from Excel workbooks into the saved-word
// store, optionally enrolling each word for review.
type Importer struct {
	vocab     *vocabulary.Service
	scheduler *spaced_repetition.Scheduler
}

// NewImporter creates an importer over the vocabulary service and scheduler.
func NewImporter(vocab *vocabulary.Service, scheduler *spaced_repetition.Scheduler) *Importer {
	return &Importer{vocab: vocab, scheduler: scheduler}
}

// Import reads the configured sheet row by row. Rows that fail are recorded
// in the result and skipped; the import continues.
func (imp *Importer) Import(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	result := &ImportResult{}
	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++

		if err := imp.processRow(ctx, row, config.Enroll, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}
	return result, nil
}

func (imp *Importer) processRow(ctx context.Context, row []string, enroll bool, result *ImportResult) error {
	word := cell(row, 0)
	if word == "" {
		result.Skipped++
		return nil
	}
	translation := cell(row, 1)

	difficulty := models.Difficulty(strings.ToLower(cell(row, 2)))
	if difficulty == "" {
		difficulty = models.DifficultyMedium
	}
	if !difficulty.Valid() {
		return fmt.Errorf("unknown difficulty %q", difficulty)
	}

	entry, err := imp.vocab.Save(ctx, word, translation, difficulty)
	if err != nil {
		return err
	}
	result.Saved++

	if enroll {
		if _, err := imp.scheduler.AddToStudyQueue(ctx, entry.ID, entry.Word, entry.Difficulty); err != nil {
			return fmt.Errorf("failed to enroll %q: %w", entry.Word, err)
		}
		if err := imp.vocab.UpdateStatus(ctx, entry.ID, models.VocabStatusLearning); err != nil {
			return err
		}
		result.Enrolled++
	}
	return nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
