package converter

import (
	"table-booking/internal/domain/reservation"
	"table-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

// ReservationRow mirrors the reservations table.
type ReservationRow struct {
	ID              int64              `db:"id"`
	UserID          int64              `db:"user_id"`
	TableNumber     pgtype.Int4        `db:"table_number"`
	NumberOfSeats   pgtype.Int4        `db:"number_of_seats"`
	ReservationTime pgtype.Timestamptz `db:"reservation_time"`
	CreatedAt       pgtype.Timestamptz `db:"created_at"`
	UpdatedAt       pgtype.Timestamptz `db:"updated_at"`
}

var ReservationColumns = []string{
	"id", "user_id", "table_number", "number_of_seats",
	"reservation_time", "created_at", "updated_at",
}

func ReservationToDomain(row ReservationRow) *reservation.Reservation {
	return reservation.ReconstructReservation(
		row.ID,
		row.UserID,
		reservation.TableNumber(pgconv.Int4ToInt(row.TableNumber)),
		reservation.Seats(pgconv.Int4ToInt(row.NumberOfSeats)),
		pgconv.TimeFromPgtype(row.ReservationTime),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}

func ReservationsToDomain(rows []ReservationRow) []*reservation.Reservation {
	out := make([]*reservation.Reservation, len(rows))
	for i, row := range rows {
		out[i] = ReservationToDomain(row)
	}
	return out
}
