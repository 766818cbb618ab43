package reservation

import (
	"fmt"
	"time"

	"table-booking/internal/pkg/errs"
)

// Layout is the fixed set of tables in the dining room. Table numbers are
// contiguous and every table has the same number of seats.
type Layout struct {
	minTable      TableNumber
	maxTable      TableNumber
	seatsPerTable Seats
}

func NewLayout(minTable, maxTable, seatsPerTable int) (Layout, error) {
	if minTable < 1 || maxTable < minTable || seatsPerTable < 1 {
		return Layout{}, fmt.Errorf("%w: tables %d..%d with %d seats",
			errs.ErrInvalidBusinessConfig, minTable, maxTable, seatsPerTable)
	}
	return Layout{
		minTable:      TableNumber(minTable),
		maxTable:      TableNumber(maxTable),
		seatsPerTable: Seats(seatsPerTable),
	}, nil
}

func (l Layout) MinTable() TableNumber { return l.minTable }
func (l Layout) MaxTable() TableNumber { return l.maxTable }
func (l Layout) SeatsPerTable() Seats  { return l.seatsPerTable }

// Tables lists every table number in ascending order.
func (l Layout) Tables() []TableNumber {
	tables := make([]TableNumber, 0, int(l.maxTable-l.minTable)+1)
	for t := l.minTable; t <= l.maxTable; t++ {
		tables = append(tables, t)
	}
	return tables
}

func (l Layout) ValidateTable(n int) (TableNumber, error) {
	if n < int(l.minTable) || n > int(l.maxTable) {
		return 0, fmt.Errorf("%w: please select a table between %d and %d",
			errs.ErrTableOutOfRange, l.minTable, l.maxTable)
	}
	return TableNumber(n), nil
}

func (l Layout) ValidateSeats(n int) (Seats, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: the number of seats must be greater than 0", errs.ErrInvalidSeats)
	}
	if n > int(l.seatsPerTable) {
		return 0, fmt.Errorf("%w: please check the number of seats, the table has only %d seats",
			errs.ErrInvalidSeats, l.seatsPerTable)
	}
	return Seats(n), nil
}

// Policy bundles everything the booking rules depend on.
type Policy struct {
	Layout   Layout
	Hours    BusinessHours
	Duration time.Duration
}

func NewPolicy(layout Layout, hours BusinessHours, duration time.Duration) (Policy, error) {
	if duration <= 0 {
		return Policy{}, fmt.Errorf("%w: reservation duration %s", errs.ErrInvalidBusinessConfig, duration)
	}
	return Policy{Layout: layout, Hours: hours, Duration: duration}, nil
}

// ValidateInstant checks that a booking may start at instant.
func (p Policy) ValidateInstant(instant time.Time) error {
	window := p.Hours.WindowAt(instant)
	if !window.Contains(instant) {
		return fmt.Errorf("%w: reservations are accepted between %02d:00 and %02d:00 UTC",
			errs.ErrOutsideBusinessHours, window.OpeningHourUTC(), window.ClosingHourUTC())
	}
	return nil
}
