package response

import (
	"table-booking/internal/domain/reservation"
	"table-booking/internal/usecase/queries"
)

type ReservationResponse struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"userId"`
	TableNumber     int    `json:"tableNumber"`
	NumberOfSeats   int    `json:"numberOfSeats"`
	ReservationTime string `json:"reservationTime"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

type ReservationListResponse struct {
	Items    []ReservationResponse `json:"items"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"pageSize"`
}

func FromReservation(r *reservation.Reservation) ReservationResponse {
	return FromReservationView(queries.ToReservationView(r))
}

func FromReservationView(v queries.ReservationView) ReservationResponse {
	return ReservationResponse{
		ID:              v.ID,
		UserID:          v.UserID,
		TableNumber:     v.TableNumber,
		NumberOfSeats:   v.NumberOfSeats,
		ReservationTime: reservation.FormatUTC(v.ReservationTime),
		CreatedAt:       reservation.FormatUTC(v.CreatedAt),
		UpdatedAt:       reservation.FormatUTC(v.UpdatedAt),
	}
}

func FromReservationPage(p *queries.ReservationPage) ReservationListResponse {
	items := make([]ReservationResponse, len(p.Items))
	for i, v := range p.Items {
		items[i] = FromReservationView(v)
	}
	return ReservationListResponse{
		Items:    items,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
}
