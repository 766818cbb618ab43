package reservation

import (
	"strings"
	"time"

	"table-booking/internal/pkg/errs"
)

// UTCLayout renders instants the way clients send them: millisecond precision
// with the Z designator.
const UTCLayout = "2006-01-02T15:04:05.000Z07:00"

type TableNumber int

func (t TableNumber) Int() int { return int(t) }

type Seats int

func (s Seats) Int() int { return int(s) }

// NormalizeUTC parses an RFC 3339 timestamp that must carry the Z designator.
// Offsets such as +02:00 are rejected even when they denote a valid instant.
func NormalizeUTC(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, errs.ErrInvalidTimeFormat
	}
	if !strings.HasSuffix(s, "Z") {
		return time.Time{}, errs.ErrTimeNotUTC
	}
	return t.UTC(), nil
}

func FormatUTC(t time.Time) string {
	return t.UTC().Format(UTCLayout)
}
