package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/vocabdrill/internal/spaced_repetition"
)

// Default window during which reminders may fire
const (
	DefaultReminderStartHour = 8
	DefaultReminderEndHour   = 21
)

// Notifier delivers a due-review reminder to the user
type Notifier interface {
	RemindDue(count int) error
}

// Reminder periodically checks for due study items and notifies the user
// during the configured hours.
type Reminder struct {
	scheduler *gocron.Scheduler
	srs       *spaced_repetition.Scheduler
	notifier  Notifier
	startHour int
	endHour   int
}

// New creates a reminder with the given notification window. Hours outside
// 0-23 fall back to the defaults.
func New(srs *spaced_repetition.Scheduler, notifier Notifier, startHour, endHour int) *Reminder {
	if startHour < 0 || startHour > 23 {
		startHour = DefaultReminderStartHour
	}
	if endHour < 0 || endHour > 23 {
		endHour = DefaultReminderEndHour
	}
	return &Reminder{
		scheduler: gocron.NewScheduler(time.UTC),
		srs:       srs,
		notifier:  notifier,
		startHour: startHour,
		endHour:   endHour,
	}
}

// Start begins the hourly due check in the background.
func (r *Reminder) Start() {
	r.scheduler.Every(1).Hour().Do(r.checkAndNotify)
	r.scheduler.StartAsync()
}

// Stop terminates the scheduled checks.
func (r *Reminder) Stop() {
	r.scheduler.Stop()
}

func (r *Reminder) checkAndNotify() {
	currentHour := time.Now().Hour()
	if currentHour < r.startHour || currentHour > r.endHour {
		log.Printf("Current hour %d is outside reminder hours (%d-%d), skipping",
			currentHour, r.startHour, r.endHour)
		return
	}

	count, err := r.srs.DueCount(context.Background())
	if err != nil {
		log.Printf("Error counting due items: %v", err)
		return
	}
	if count == 0 {
		return
	}

	if err := r.notifier.RemindDue(count); err != nil {
		log.Printf("Error sending reminder: %v", err)
	}
}
