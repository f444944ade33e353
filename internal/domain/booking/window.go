package booking

import "time"

// Window buckets a booking for the history view relative to the current day.
type Window string

const (
	WindowScheduled Window = "scheduled"
	WindowCurrent   Window = "current"
	WindowPast      Window = "past"
)

// ClassifyWindow places a scheduled time into the scheduled/current/past
// bucket. It walks the same year, month then day-of-month components as the
// advance-booking check so that fare surcharging and history bucketing never
// disagree about what counts as a future day.
func ClassifyWindow(scheduled, now time.Time) Window {
	if scheduled.After(now) {
		switch {
		case scheduled.Year() > now.Year():
			return WindowScheduled
		case scheduled.Month() > now.Month():
			return WindowScheduled
		case scheduled.Day() == now.Day():
			return WindowCurrent
		default:
			return WindowScheduled
		}
	}
	switch {
	case scheduled.Year() < now.Year():
		return WindowPast
	case scheduled.Month() < now.Month():
		return WindowPast
	case scheduled.Day() == now.Day():
		return WindowCurrent
	default:
		return WindowPast
	}
}
