package services

import "time"

// startOfDay truncates to local midnight, the day key used by adherence,
// reminder markers and monitoring entries.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// minuteSlot renders t as the "HH:MM" key dose times are stored under.
func minuteSlot(t time.Time) string {
	return t.Format("15:04")
}

// validSlot reports whether s parses as a zero-padded "HH:MM" time.
func validSlot(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil && len(s) == 5
}
