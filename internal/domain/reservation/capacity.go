package reservation

import (
	"time"
)

// CapacityCheck is the outcome of comparing a request against the bookings
// that overlap it on one table.
type CapacityCheck struct {
	Requested Seats
	Committed Seats
	Capacity  Seats
	Conflicts []*Reservation
}

// OverlapBounds returns the exclusive bounds (instant-d, instant+d) of start
// times whose slot shares time with a slot starting at instant.
func OverlapBounds(instant time.Time, duration time.Duration) (from, to time.Time) {
	return instant.Add(-duration), instant.Add(duration)
}

// CheckCapacity sums the seats of the overlapping bookings. existing is
// expected in chronological order and is kept as the conflict list when the
// request does not fit.
func CheckCapacity(capacity, requested Seats, existing []*Reservation) CapacityCheck {
	check := CapacityCheck{
		Requested: requested,
		Capacity:  capacity,
	}
	for _, r := range existing {
		check.Committed += r.Seats()
	}
	if !check.Admissible() {
		check.Conflicts = existing
	}
	return check
}

func (c CapacityCheck) Remaining() Seats {
	return c.Capacity - c.Committed
}

func (c CapacityCheck) Admissible() bool {
	return c.Remaining() >= c.Requested
}

func (c CapacityCheck) Deficit() Seats {
	if c.Admissible() {
		return 0
	}
	return c.Requested - c.Remaining()
}
