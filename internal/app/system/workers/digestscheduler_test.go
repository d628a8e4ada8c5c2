package workers

import (
	"testing"
	"time"

	"github.com/dalemusser/coursepulse/internal/domain/models"
)

func TestNextFire(t *testing.T) {
	sched := Schedule{
		DailyHour:  8,
		WeeklyDay:  time.Monday,
		WeeklyHour: 9,
		Location:   time.UTC,
	}

	// 2026-03-04 is a Wednesday.
	at := func(day, hour, min int) time.Time {
		return time.Date(2026, time.March, day, hour, min, 0, 0, time.UTC)
	}

	cases := []struct {
		name      string
		now       time.Time
		frequency string
		want      time.Time
	}{
		{"daily before the hour", at(4, 6, 30), models.FrequencyDaily, at(4, 8, 0)},
		{"daily at the hour rolls to tomorrow", at(4, 8, 0), models.FrequencyDaily, at(5, 8, 0)},
		{"daily after the hour", at(4, 14, 0), models.FrequencyDaily, at(5, 8, 0)},
		{"weekly midweek waits for monday", at(4, 10, 0), models.FrequencyWeekly, at(9, 9, 0)},
		{"weekly on monday before the hour", at(2, 7, 0), models.FrequencyWeekly, at(2, 9, 0)},
		{"weekly on monday after the hour", at(2, 11, 0), models.FrequencyWeekly, at(9, 9, 0)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextFire(tc.now, tc.frequency, sched)
			if !got.Equal(tc.want) {
				t.Errorf("NextFire(%v, %s) = %v, want %v", tc.now, tc.frequency, got, tc.want)
			}
			if !got.After(tc.now) {
				t.Errorf("NextFire returned a time not after now")
			}
		})
	}
}

func TestNextFire_NilLocationDefaults(t *testing.T) {
	sched := Schedule{DailyHour: 8}
	now := time.Now()
	got := NextFire(now, models.FrequencyDaily, sched)
	if !got.After(now) {
		t.Errorf("NextFire = %v, want a time after %v", got, now)
	}
	if got.Hour() != 8 {
		t.Errorf("fire hour = %d, want 8", got.Hour())
	}
}
