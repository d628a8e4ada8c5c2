// internal/app/system/digest/processor.go
package digest

import (
	"context"

	"go.uber.org/zap"
)

// RunCadence processes every course scheduled on the given frequency. One
// course's failure never aborts the batch; the only way the run ends early
// is the course list itself being unreadable (nothing can be processed
// without the repository).
//
// Courses are handled sequentially. A daily and a weekly run may execute
// concurrently — they operate on disjoint course sets — and the per-course
// lock protects a course whose frequency flips mid-run or that a manual
// trigger touches at the same time.
func (p *Processor) RunCadence(ctx context.Context, frequency string) Summary {
	sum := Summary{Frequency: frequency}

	courses, err := p.courses.ListByFrequency(ctx, frequency)
	if err != nil {
		p.log.Error("loading courses for cadence failed",
			zap.String("frequency", frequency),
			zap.Error(err))
		return sum
	}

	p.log.Info("cadence run started",
		zap.String("frequency", frequency),
		zap.Int("courses", len(courses)))

	for i := range courses {
		course := &courses[i]

		lock := p.locks.get(course.ID)
		lock.Lock()

		res := p.Advance(ctx, course, course.NumQuestions)
		sum.Processed++
		if res.Archived {
			sum.Archived++
		}
		sum.Generated += res.Generated

		switch res.Outcome {
		case OutcomeSkippedNoDocument:
			sum.Skipped++
			lock.Unlock()
			continue
		case OutcomeGenerationFailed, OutcomePersistFailed:
			sum.Failed++
		}

		// Members are notified even when the new batch is empty or the
		// lifecycle failed past the document check; the email links to the
		// course, not to a specific batch.
		fanout := p.NotifyMembers(ctx, course)
		sum.Sent += fanout.Sent

		lock.Unlock()
	}

	p.log.Info("cadence run finished",
		zap.String("frequency", frequency),
		zap.Int("processed", sum.Processed),
		zap.Int("archived", sum.Archived),
		zap.Int("generated", sum.Generated),
		zap.Int("skipped", sum.Skipped),
		zap.Int("failed", sum.Failed),
		zap.Int("sent", sum.Sent))

	return sum
}
