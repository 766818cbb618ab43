package request

import (
	"fmt"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/queries"
)

type CreateReservationRequest struct {
	UserID          int64  `json:"userId" binding:"required,gte=1"`
	TableNumber     int    `json:"tableNumber" binding:"required"`
	NumberOfSeats   int    `json:"numberOfSeats"`
	ReservationTime string `json:"reservationTime" binding:"required"`
}

// ToCommand validates the request against the booking policy. The instant
// must be UTC and fall inside the business window of its local date.
func (r CreateReservationRequest) ToCommand(policy reservation.Policy) (commands.MakeReservationInput, error) {
	instant, err := reservation.NormalizeUTC(r.ReservationTime)
	if err != nil {
		return commands.MakeReservationInput{}, err
	}
	table, err := policy.Layout.ValidateTable(r.TableNumber)
	if err != nil {
		return commands.MakeReservationInput{}, err
	}
	seats, err := policy.Layout.ValidateSeats(r.NumberOfSeats)
	if err != nil {
		return commands.MakeReservationInput{}, err
	}
	if err := policy.ValidateInstant(instant); err != nil {
		return commands.MakeReservationInput{}, err
	}

	return commands.MakeReservationInput{
		UserID: r.UserID,
		Table:  table,
		Seats:  seats,
		Time:   instant,
	}, nil
}

type ListReservationsQuery struct {
	Start       string `form:"start" binding:"required"`
	End         string `form:"end" binding:"required"`
	Page        int    `form:"page" binding:"omitempty,gte=1"`
	PageSize    int    `form:"pageSize" binding:"omitempty,gte=1,lte=100"`
	TableNumber *int   `form:"tableNumber"`
}

func (q ListReservationsQuery) ToInput(layout reservation.Layout) (queries.ListReservationsInput, error) {
	start, err := reservation.NormalizeUTC(q.Start)
	if err != nil {
		return queries.ListReservationsInput{}, err
	}
	end, err := reservation.NormalizeUTC(q.End)
	if err != nil {
		return queries.ListReservationsInput{}, err
	}
	if end.Before(start) {
		return queries.ListReservationsInput{}, fmt.Errorf("%w: end must not be before start", errs.ErrInvalidDateRange)
	}

	in := queries.ListReservationsInput{
		Start:    start,
		End:      end,
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	if q.TableNumber != nil {
		table, err := layout.ValidateTable(*q.TableNumber)
		if err != nil {
			return queries.ListReservationsInput{}, err
		}
		in.Table = &table
	}
	return in, nil
}
