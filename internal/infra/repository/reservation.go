package repository

import (
	"context"
	"time"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/infra"
	"table-booking/internal/infra/db"
	"table-booking/internal/infra/repository/converter"
	"table-booking/internal/pkg/pgconv"
	"table-booking/internal/usecase/shared"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

func (r *ReservationRepository) FindOverlapping(
	ctx context.Context,
	db db.DBTX,
	table reservation.TableNumber,
	instant time.Time,
	duration time.Duration,
) ([]*reservation.Reservation, error) {
	from, to := reservation.OverlapBounds(instant, duration)
	q := selectReservations().
		Where(sq.Eq{"table_number": table.Int()}).
		Where(sq.Gt{"reservation_time": pgconv.TimeToPgtype(from)}).
		Where(sq.Lt{"reservation_time": pgconv.TimeToPgtype(to)}).
		OrderBy("reservation_time ASC", "id ASC")

	return r.queryMany(ctx, db, q, "failed to find overlapping reservations")
}

func (r *ReservationRepository) FindExactlyAt(
	ctx context.Context,
	db db.DBTX,
	table reservation.TableNumber,
	instant time.Time,
	duration time.Duration,
) ([]*reservation.Reservation, error) {
	q := selectReservations().
		Where(sq.Eq{"table_number": table.Int()}).
		Where(sq.GtOrEq{"reservation_time": pgconv.TimeToPgtype(instant)}).
		Where(sq.Lt{"reservation_time": pgconv.TimeToPgtype(instant.Add(duration))}).
		OrderBy("reservation_time ASC", "id ASC")

	return r.queryMany(ctx, db, q, "failed to find reservations at instant")
}

func (r *ReservationRepository) Create(ctx context.Context, db db.DBTX, draft reservation.Draft) (*reservation.Reservation, error) {
	sql, args, err := psql.Insert(reservationsTable).
		Columns("user_id", "table_number", "number_of_seats", "reservation_time").
		Values(draft.UserID, draft.Table.Int(), draft.Seats.Int(), pgconv.TimeToPgtype(draft.Time)).
		Suffix("RETURNING " + columnList(converter.ReservationColumns)).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build insert reservation query", err, infra.KindDBFailure)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create reservation", err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[converter.ReservationRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create reservation", err)
	}

	return converter.ReservationToDomain(row), nil
}

func (r *ReservationRepository) Delete(ctx context.Context, db db.DBTX, id int64) error {
	sql, args, err := psql.Delete(reservationsTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build delete reservation query", err, infra.KindDBFailure)
	}

	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, db db.DBTX, id int64) (*reservation.Reservation, error) {
	sql, args, err := selectReservations().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build find reservation query", err, infra.KindDBFailure)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[converter.ReservationRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	return converter.ReservationToDomain(row), nil
}

func (r *ReservationRepository) FindInRange(ctx context.Context, db db.DBTX, filter shared.RangeFilter) ([]*reservation.Reservation, error) {
	q := selectReservations().
		Where(sq.GtOrEq{"reservation_time": pgconv.TimeToPgtype(filter.Start)}).
		Where(sq.LtOrEq{"reservation_time": pgconv.TimeToPgtype(filter.End)}).
		OrderBy("reservation_time ASC", "id ASC").
		Limit(filter.Limit()).
		Offset(filter.Offset())
	if filter.Table != nil {
		q = q.Where(sq.Eq{"table_number": filter.Table.Int()})
	}

	return r.queryMany(ctx, db, q, "failed to list reservations in range")
}

func (r *ReservationRepository) LockTable(ctx context.Context, db db.DBTX, table reservation.TableNumber) error {
	if _, err := db.Exec(ctx, "SELECT pg_advisory_xact_lock($1, $2)", tableLockNamespace, int32(table)); err != nil {
		return infra.WrapRepoErr("failed to lock table", err)
	}
	return nil
}

func (r *ReservationRepository) queryMany(ctx context.Context, db db.DBTX, q sq.SelectBuilder, msg string) ([]*reservation.Reservation, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err, infra.KindDBFailure)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.ReservationRow])
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err, infra.KindDBFailure)
	}

	return converter.ReservationsToDomain(collected), nil
}

func selectReservations() sq.SelectBuilder {
	return psql.Select(converter.ReservationColumns...).From(reservationsTable)
}
