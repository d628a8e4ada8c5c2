// internal/app/system/workers/digestscheduler.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/coursepulse/internal/app/system/digest"
	"github.com/dalemusser/coursepulse/internal/domain/models"
	"go.uber.org/zap"
)

// Schedule holds the wall-clock firing times for both cadences.
type Schedule struct {
	DailyHour  int          // hour of day for the daily run, 0-23
	WeeklyDay  time.Weekday // day of week for the weekly run
	WeeklyHour int          // hour of day for the weekly run, 0-23
	Location   *time.Location
}

// DigestScheduler is a background worker that fires digest cadence runs at
// their scheduled wall-clock times.
type DigestScheduler struct {
	processor *digest.Processor
	schedule  Schedule
	log       *zap.Logger
	stopCh    chan struct{}
	wg        sync.WaitGroup
}

// NewDigestScheduler creates a scheduler for the given processor. A nil
// Location falls back to time.Local.
func NewDigestScheduler(p *digest.Processor, schedule Schedule, logger *zap.Logger) *DigestScheduler {
	if schedule.Location == nil {
		schedule.Location = time.Local
	}
	return &DigestScheduler{
		processor: p,
		schedule:  schedule,
		log:       logger,
		stopCh:    make(chan struct{}),
	}
}

// Start begins both cadence loops.
func (w *DigestScheduler) Start() {
	w.wg.Add(2)
	go w.run(models.FrequencyDaily)
	go w.run(models.FrequencyWeekly)
	w.log.Info("digest scheduler started",
		zap.Int("daily_hour", w.schedule.DailyHour),
		zap.String("weekly_day", w.schedule.WeeklyDay.String()),
		zap.Int("weekly_hour", w.schedule.WeeklyHour))
}

// Stop signals both loops to stop and waits for them to finish. A run in
// flight completes before Stop returns.
func (w *DigestScheduler) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("digest scheduler stopped")
}

func (w *DigestScheduler) run(frequency string) {
	defer w.wg.Done()

	for {
		next := NextFire(time.Now().In(w.schedule.Location), frequency, w.schedule)
		timer := time.NewTimer(time.Until(next))
		select {
		case <-w.stopCh:
			timer.Stop()
			return
		case <-timer.C:
			w.fire(frequency)
		}
	}
}

func (w *DigestScheduler) fire(frequency string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	summary := w.processor.RunCadence(ctx, frequency)
	w.log.Info("scheduled digest run finished",
		zap.String("frequency", summary.Frequency),
		zap.Int("processed", summary.Processed),
		zap.Int("sent", summary.Sent),
		zap.Int("failed", summary.Failed))
}

// NextFire computes the next wall-clock firing time strictly after now for
// the given cadence. Daily runs fire at DailyHour every day; weekly runs
// fire at WeeklyHour on WeeklyDay.
func NextFire(now time.Time, frequency string, s Schedule) time.Time {
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)

	switch frequency {
	case models.FrequencyWeekly:
		next := time.Date(now.Year(), now.Month(), now.Day(), s.WeeklyHour, 0, 0, 0, loc)
		days := (int(s.WeeklyDay) - int(now.Weekday()) + 7) % 7
		next = next.AddDate(0, 0, days)
		if !next.After(now) {
			next = next.AddDate(0, 0, 7)
		}
		return next
	default:
		next := time.Date(now.Year(), now.Month(), now.Day(), s.DailyHour, 0, 0, 0, loc)
		if !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}
		return next
	}
}
