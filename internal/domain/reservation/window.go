package reservation

import (
	"fmt"
	"time"

	"table-booking/internal/pkg/errs"
)

// BusinessHours are the local opening hours of the restaurant. A closing hour
// of 24 stands for local midnight.
type BusinessHours struct {
	location    *time.Location
	openingHour int
	closingHour int
}

func NewBusinessHours(timezone string, openingHour, closingHour int) (BusinessHours, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return BusinessHours{}, fmt.Errorf("%w: timezone %q: %v", errs.ErrInvalidBusinessConfig, timezone, err)
	}
	if openingHour < 0 || openingHour > 23 || closingHour < 1 || closingHour > 24 {
		return BusinessHours{}, fmt.Errorf("%w: hours %d..%d", errs.ErrInvalidBusinessConfig, openingHour, closingHour)
	}
	return BusinessHours{location: loc, openingHour: openingHour, closingHour: closingHour}, nil
}

func (h BusinessHours) Location() *time.Location { return h.location }

func (h BusinessHours) zone() *time.Location {
	if h.location == nil {
		return time.UTC
	}
	return h.location
}

// Contains reports whether a booking may start at instant, judged by the
// window of instant's own local date.
func (h BusinessHours) Contains(instant time.Time) bool {
	return h.WindowAt(instant).Contains(instant)
}

// NextOpeningAfter returns the first local opening strictly after instant, in
// UTC. The day is advanced in local time so the offset of the target date is
// used, not the one in force at instant.
func (h BusinessHours) NextOpeningAfter(instant time.Time) time.Time {
	loc := h.zone()
	y, m, d := instant.In(loc).Date()
	opening := time.Date(y, m, d, h.openingHour, 0, 0, 0, loc)
	if !opening.After(instant) {
		opening = time.Date(y, m, d+1, h.openingHour, 0, 0, 0, loc)
	}
	return opening.UTC()
}

// WindowAt converts the local hours to UTC for the local calendar date that
// contains instant. The offset is taken per date so DST changes are honoured.
func (h BusinessHours) WindowAt(instant time.Time) BusinessWindow {
	loc := h.zone()
	y, m, d := instant.In(loc).Date()
	// time.Date normalises hour 24 to midnight of the following day.
	opening := time.Date(y, m, d, h.openingHour, 0, 0, 0, loc).UTC()
	closing := time.Date(y, m, d, h.closingHour, 0, 0, 0, loc).UTC()
	return NewBusinessWindow(opening.Hour(), closing.Hour())
}

// BusinessWindow is the half-open UTC hour range [opening, closing) in which
// bookings may start. closing <= opening means the range wraps past midnight
// UTC; a closing hour of 0 therefore reads as 24.
type BusinessWindow struct {
	openingHourUTC int
	closingHourUTC int
}

func NewBusinessWindow(openingHourUTC, closingHourUTC int) BusinessWindow {
	return BusinessWindow{
		openingHourUTC: openingHourUTC % 24,
		closingHourUTC: closingHourUTC % 24,
	}
}

func (w BusinessWindow) OpeningHourUTC() int { return w.openingHourUTC }
func (w BusinessWindow) ClosingHourUTC() int { return w.closingHourUTC }

// Contains reports whether the UTC hour of instant falls inside the window.
func (w BusinessWindow) Contains(instant time.Time) bool {
	h := instant.UTC().Hour()
	switch {
	case w.openingHourUTC == w.closingHourUTC:
		// open around the clock
		return true
	case w.openingHourUTC < w.closingHourUTC:
		return h >= w.openingHourUTC && h < w.closingHourUTC
	default:
		return h >= w.openingHourUTC || h < w.closingHourUTC
	}
}
