package reservation

import (
	"time"
)

// Reservation is an accepted booking as recorded in the ledger. It is
// immutable once written.
type Reservation struct {
	id        int64
	userID    int64
	table     TableNumber
	seats     Seats
	time      time.Time
	createdAt time.Time
	updatedAt time.Time
}

// Draft is a booking request that passed validation but has not been
// admitted yet.
type Draft struct {
	UserID int64
	Table  TableNumber
	Seats  Seats
	Time   time.Time
}

func NewDraft(userID int64, table TableNumber, seats Seats, instant time.Time) Draft {
	return Draft{
		UserID: userID,
		Table:  table,
		Seats:  seats,
		Time:   instant.UTC(),
	}
}

func ReconstructReservation(
	id, userID int64,
	table TableNumber,
	seats Seats,
	instant time.Time,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:        id,
		userID:    userID,
		table:     table,
		seats:     seats,
		time:      instant.UTC(),
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// EndsAt returns the exclusive end of the booking for the given slot length.
func (r *Reservation) EndsAt(duration time.Duration) time.Time {
	return r.time.Add(duration)
}

// Overlaps reports whether two bookings of the given length on the same table
// share any time. Touching slots (one ends as the other starts) do not overlap.
func (r *Reservation) Overlaps(instant time.Time, duration time.Duration) bool {
	return r.time.After(instant.Add(-duration)) && r.time.Before(instant.Add(duration))
}

func (r *Reservation) ID() int64            { return r.id }
func (r *Reservation) UserID() int64        { return r.userID }
func (r *Reservation) Table() TableNumber   { return r.table }
func (r *Reservation) Seats() Seats         { return r.seats }
func (r *Reservation) Time() time.Time      { return r.time }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }
