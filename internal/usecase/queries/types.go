package queries

import (
	"time"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/domain/user"
)

// ReservationView represents read-optimized reservation data
type ReservationView struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	TableNumber     int       `json:"tableNumber"`
	NumberOfSeats   int       `json:"numberOfSeats"`
	ReservationTime time.Time `json:"reservationTime"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ReservationPage is one page of a range listing
type ReservationPage struct {
	Items    []ReservationView `json:"items"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}

// UserView represents read-optimized user data
type UserView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToReservationView(r *reservation.Reservation) ReservationView {
	return ReservationView{
		ID:              r.ID(),
		UserID:          r.UserID(),
		TableNumber:     r.Table().Int(),
		NumberOfSeats:   r.Seats().Int(),
		ReservationTime: r.Time(),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
	}
}

func ToUserView(u *user.User) UserView {
	return UserView{
		ID:        u.ID(),
		Name:      u.Name().Value(),
		Email:     u.Email().Value(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}
