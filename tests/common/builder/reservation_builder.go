//go:build unit || e2e

package builder

import (
	"time"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/handler/dto/request"
)

type ReservationBuilder struct {
	ID        int64
	UserID    int64
	Table     int
	Seats     int
	Time      time.Time
	CreatedAt time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ID:        1,
		UserID:    1,
		Table:     1,
		Seats:     2,
		Time:      time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ReservationBuilder) BuildDomain() *reservation.Reservation {
	return reservation.ReconstructReservation(
		b.ID, b.UserID,
		reservation.TableNumber(b.Table),
		reservation.Seats(b.Seats),
		b.Time,
		b.CreatedAt, b.CreatedAt,
	)
}

func (b *ReservationBuilder) BuildDraft() reservation.Draft {
	return reservation.NewDraft(b.UserID, reservation.TableNumber(b.Table), reservation.Seats(b.Seats), b.Time)
}

func (b *ReservationBuilder) BuildRequest() request.CreateReservationRequest {
	return request.CreateReservationRequest{
		UserID:          b.UserID,
		TableNumber:     b.Table,
		NumberOfSeats:   b.Seats,
		ReservationTime: reservation.FormatUTC(b.Time),
	}
}

// Fluent builder methods
func (b *ReservationBuilder) WithID(id int64) *ReservationBuilder {
	b.ID = id
	return b
}

func (b *ReservationBuilder) WithUserID(id int64) *ReservationBuilder {
	b.UserID = id
	return b
}

func (b *ReservationBuilder) WithTable(table int) *ReservationBuilder {
	b.Table = table
	return b
}

func (b *ReservationBuilder) WithSeats(seats int) *ReservationBuilder {
	b.Seats = seats
	return b
}

func (b *ReservationBuilder) At(t time.Time) *ReservationBuilder {
	b.Time = t
	return b
}
