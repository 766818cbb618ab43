//go:build unit || e2e

package builder

import (
	"time"

	"table-booking/internal/domain/user"
	"table-booking/internal/handler/dto/request"
)

type UserBuilder struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:        1,
		Name:      "Mario Rossi",
		Email:     "mario.rossi@example.com",
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDraft() (user.Draft, error) {
	return user.NewDraft(u.Name, u.Email)
}

func (u *UserBuilder) BuildDomain() (*user.User, error) {
	draft, err := u.BuildDraft()
	if err != nil {
		return nil, err
	}
	return user.ReconstructUser(u.ID, draft.Name, draft.Email, u.CreatedAt, u.CreatedAt), nil
}

func (u *UserBuilder) MustBuildDomain() *user.User {
	usr, err := u.BuildDomain()
	if err != nil {
		panic(err)
	}
	return usr
}

func (u *UserBuilder) BuildRequest() request.CreateUserRequest {
	return request.CreateUserRequest{
		Name:  u.Name,
		Email: u.Email,
	}
}

// Fluent builder methods
func (u *UserBuilder) WithID(id int64) *UserBuilder {
	u.ID = id
	return u
}

func (u *UserBuilder) WithName(name string) *UserBuilder {
	u.Name = name
	return u
}

func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}
