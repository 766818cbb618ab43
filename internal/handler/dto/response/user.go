package response

import (
	"table-booking/internal/domain/reservation"
	"table-booking/internal/domain/user"
	"table-booking/internal/usecase/queries"
)

type UserResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func FromUser(u *user.User) UserResponse {
	return FromUserView(queries.ToUserView(u))
}

func FromUserView(v queries.UserView) UserResponse {
	return UserResponse{
		ID:        v.ID,
		Name:      v.Name,
		Email:     v.Email,
		CreatedAt: reservation.FormatUTC(v.CreatedAt),
		UpdatedAt: reservation.FormatUTC(v.UpdatedAt),
	}
}

func FromUserViews(vs []queries.UserView) []UserResponse {
	out := make([]UserResponse, len(vs))
	for i, v := range vs {
		out[i] = FromUserView(v)
	}
	return out
}
