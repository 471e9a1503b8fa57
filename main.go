package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/example/vocabdrill/internal/config"
	"github.com/example/vocabdrill/internal/database"
	"github.com/example/vocabdrill/internal/excel"
	"github.com/example/vocabdrill/internal/scheduler"
	"github.com/example/vocabdrill/internal/spaced_repetition"
	"github.com/example/vocabdrill/internal/vocabulary"
)

func main() {
	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()
	db, err := database.Connect(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	srs := spaced_repetition.NewScheduler(
		database.NewStudyItemRepository(db),
		database.NewSessionRepository(db),
		database.NewStatsCacheRepository(db),
	)
	vocab := vocabulary.NewService(database.NewVocabularyRepository(db))

	ctx := context.Background()

	switch os.Args[1] {
	case "import":
		runImport(ctx, vocab, srs)
	case "export":
		runExport(ctx, srs)
	case "stats":
		runStats(ctx, srs)
	case "due":
		runDue(ctx, srs)
	case "remind":
		runRemind(srs, cfg)
	default:
		printUsage()
		os.Exit(1)
	}
}

func runImport(ctx context.Context, vocab *vocabulary.Service, srs *spaced_repetition.Scheduler) {
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	file := importCmd.String("file", "", "Excel file with Word/Translation/Difficulty columns (required)")
	enroll := importCmd.Bool("enroll", false, "Also enroll imported words for review")
	importCmd.Parse(os.Args[2:])

	if *file == "" {
		importCmd.Usage()
		os.Exit(1)
	}

	cfg := excel.DefaultImportConfig(*file)
	cfg.Enroll = *enroll

	result, err := excel.NewImporter(vocab, srs).Import(ctx, cfg)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	fmt.Printf("Processed %d rows: %d saved, %d enrolled, %d skipped\n",
		result.TotalProcessed, result.Saved, result.Enrolled, result.Skipped)
	for _, e := range result.Errors {
		fmt.Printf("  %s\n", e)
	}
}

func runExport(ctx context.Context, srs *spaced_repetition.Scheduler) {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	file := exportCmd.String("file", "progress.xlsx", "Output file path")
	exportCmd.Parse(os.Args[2:])

	if err := excel.NewExporter(srs).Export(ctx, *file); err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	fmt.Printf("Progress report written to %s\n", *file)
}

func runStats(ctx context.Context, srs *spaced_repetition.Scheduler) {
	stats, err := srs.GetStatistics(ctx)
	if err != nil {
		log.Fatalf("Failed to compute statistics: %v", err)
	}
	fmt.Printf("Due today:      %d\n", stats.DueToday)
	fmt.Printf("Total items:    %d\n", stats.TotalItems)
	fmt.Printf("Mastered:       %d\n", stats.Mastered)
	fmt.Printf("Accuracy:       %d%%\n", stats.Accuracy)
	fmt.Printf("Sessions:       %d\n", stats.TotalSessions)
	if stats.EstimatedMasteryDate != nil {
		fmt.Printf("Mastery around: %s\n", stats.EstimatedMasteryDate.Format("2006-01-02"))
	}

	trend, err := srs.GetPerformanceTrend(ctx)
	if err != nil {
		log.Fatalf("Failed to compute trend: %v", err)
	}
	if len(trend) > 0 {
		fmt.Println("Last 7 days:")
		for _, point := range trend {
			fmt.Printf("  %s  %d%%\n", point.Date, point.Accuracy)
		}
	}
}

func runDue(ctx context.Context, srs *spaced_repetition.Scheduler) {
	dueCmd := flag.NewFlagSet("due", flag.ExitOnError)
	mode := dueCmd.String("mode", string(spaced_repetition.ModeStandard), "Queue mode: quick, standard or focused")
	dueCmd.Parse(os.Args[2:])

	queue, err := srs.GetStudyQueue(ctx, spaced_repetition.Mode(*mode))
	if err != nil {
		log.Fatalf("Failed to build study queue: %v", err)
	}
	if len(queue) == 0 {
		fmt.Println("Nothing to study right now.")
		return
	}
	for _, item := range queue {
		fmt.Printf("%-20s due %s (interval %dd, ease %.2f)\n",
			item.Word, item.NextReview.Format("2006-01-02"), item.Interval, item.EaseFactor)
	}
}

// logNotifier prints reminders to the process log
type logNotifier struct{}

func (logNotifier) RemindDue(count int) error {
	log.Printf("You have %d words due for review", count)
	return nil
}

func runRemind(srs *spaced_repetition.Scheduler, cfg *config.Config) {
	reminder := scheduler.New(srs, logNotifier{}, cfg.ReminderStartHour, cfg.ReminderEndHour)
	reminder.Start()
	defer reminder.Stop()

	log.Println("Reminder running. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("Received signal: %v, shutting down", sig)
}

func printUsage() {
	fmt.Println("Usage: vocabdrill <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  import -file words.xlsx [-enroll]   Import a vocabulary list")
	fmt.Println("  export [-file progress.xlsx]        Export a progress report")
	fmt.Println("  stats                               Show study statistics")
	fmt.Println("  due [-mode quick|standard|focused]  Show the current study queue")
	fmt.Println("  remind                              Run the due-review reminder")
}
