package reservation

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Alternative is what a rejected request is offered instead: a later time on
// the same table and the tables that are free at the requested time.
type Alternative struct {
	NextAvailable   time.Time
	AvailableTables []TableNumber
	Found           bool
}

// NextSlotAfter derives the suggested start time from the conflicting
// bookings. The conflict with the latest start wins and its end is the
// candidate. The candidate stands only if it is inside the requested instant's
// window and bookable on its own date; otherwise it moves to the next opening.
func NextSlotAfter(conflicts []*Reservation, duration time.Duration, hours BusinessHours, requested time.Time) (time.Time, bool) {
	latest := LatestOf(conflicts)
	if latest == nil {
		return time.Time{}, false
	}
	candidate := latest.EndsAt(duration).UTC()
	if hours.WindowAt(requested).Contains(candidate) && hours.Contains(candidate) {
		return candidate, true
	}
	return hours.NextOpeningAfter(candidate), true
}

// LatestOf returns the booking with the greatest start time. Ties resolve to
// the later element so a chronological slice yields its last entry.
func LatestOf(reservations []*Reservation) *Reservation {
	var latest *Reservation
	for _, r := range reservations {
		if latest == nil || !r.Time().Before(latest.Time()) {
			latest = r
		}
	}
	return latest
}

// FreeTables keeps the tables that hold no booking at the requested time.
// occupied maps a table to the number of bookings found on it.
func FreeTables(tables []TableNumber, occupied map[TableNumber]int) []TableNumber {
	free := make([]TableNumber, 0, len(tables))
	for _, t := range tables {
		if occupied[t] == 0 {
			free = append(free, t)
		}
	}
	return free
}

// Message is the human-readable suggestion returned with a rejection.
func (a Alternative) Message() string {
	if !a.Found {
		return "This table is fully booked."
	}
	msg := fmt.Sprintf("This table is fully booked. Try again after %s (UTC).", FormatUTC(a.NextAvailable))
	if len(a.AvailableTables) > 0 {
		msg += " Or you can select another table. Available tables: " + JoinTables(a.AvailableTables)
	}
	return msg
}

func JoinTables(tables []TableNumber) string {
	parts := make([]string, len(tables))
	for i, t := range tables {
		parts[i] = strconv.Itoa(int(t))
	}
	return strings.Join(parts, ", ")
}
