package queries

import (
	"context"
	"time"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"
)

type ListReservationsInput struct {
	Start    time.Time
	End      time.Time
	Table    *reservation.TableNumber
	Page     int
	PageSize int
}

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/reservation_mock.go -package=queriesmock
type ReservationQueries interface {
	ListReservations(ctx context.Context, in ListReservationsInput) (*ReservationPage, error)
}

type reservationQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewReservationQueries(uow shared.UnitOfWork) ReservationQueries {
	return &reservationQueriesImpl{uow: uow}
}

func (q *reservationQueriesImpl) ListReservations(ctx context.Context, in ListReservationsInput) (*ReservationPage, error) {
	if in.End.Before(in.Start) {
		return nil, errs.FromCause(errs.CodeGeneralValidationFailed, errs.ErrInvalidDateRange).
			WithDetails("The end date must not be before the start date.")
	}

	filter := shared.RangeFilter{
		Start:    in.Start,
		End:      in.End,
		Table:    in.Table,
		Page:     in.Page,
		PageSize: in.PageSize,
	}

	var found []*reservation.Reservation
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		found, err = tx.Reservations().FindInRange(ctx, tx.DB(), filter)
		return err
	})
	if err != nil {
		return nil, errs.FromCause(errs.CodeReservationDateRangeFetchFailed, err)
	}

	page := &ReservationPage{
		Items:    make([]ReservationView, len(found)),
		Page:     int(filter.Offset()/filter.Limit()) + 1,
		PageSize: int(filter.Limit()),
	}
	for i, r := range found {
		page.Items[i] = ToReservationView(r)
	}
	return page, nil
}
