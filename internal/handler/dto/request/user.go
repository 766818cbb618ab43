package request

import (
	"table-booking/internal/domain/user"
)

type CreateUserRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Email string `json:"email" binding:"required,email"`
}

func (r CreateUserRequest) ToDraft() (user.Draft, error) {
	return user.NewDraft(r.Name, r.Email)
}

type ListUsersQuery struct {
	Email string `form:"email" binding:"omitempty,email"`
}

// EmailFilter returns nil when no filter was given.
func (q ListUsersQuery) EmailFilter() (*user.Email, error) {
	if q.Email == "" {
		return nil, nil
	}
	email, err := user.NewEmail(q.Email)
	if err != nil {
		return nil, err
	}
	return &email, nil
}
