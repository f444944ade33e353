package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyWindow(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, kl)

	tests := []struct {
		name      string
		scheduled time.Time
		want      Window
	}{
		{"later today", time.Date(2026, 9, 15, 18, 0, 0, 0, kl), WindowCurrent},
		{"earlier today", time.Date(2026, 9, 15, 8, 0, 0, 0, kl), WindowCurrent},
		{"tomorrow", time.Date(2026, 9, 16, 9, 0, 0, 0, kl), WindowScheduled},
		{"next month", time.Date(2026, 10, 2, 9, 0, 0, 0, kl), WindowScheduled},
		{"next year", time.Date(2027, 1, 5, 9, 0, 0, 0, kl), WindowScheduled},
		{"yesterday", time.Date(2026, 9, 14, 9, 0, 0, 0, kl), WindowPast},
		{"last month", time.Date(2026, 8, 20, 9, 0, 0, 0, kl), WindowPast},
		{"last year", time.Date(2025, 12, 31, 9, 0, 0, 0, kl), WindowPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyWindow(tt.scheduled, now))
		})
	}
}

// Fare surcharging and history bucketing walk the same date components, so a
// booking never sits in the scheduled bucket while pricing as same-day.
func TestClassifyWindow_AgreesWithAdvanceBooking(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, kl)

	for _, scheduled := range []time.Time{
		time.Date(2026, 9, 15, 18, 0, 0, 0, kl),
		time.Date(2026, 9, 16, 9, 0, 0, 0, kl),
		time.Date(2026, 10, 1, 9, 0, 0, 0, kl),
		time.Date(2027, 2, 1, 9, 0, 0, 0, kl),
	} {
		isScheduled := ClassifyWindow(scheduled, now) == WindowScheduled
		assert.Equal(t, IsAdvanceBooking(scheduled, now), isScheduled, "scheduled %v", scheduled)
	}
}
