package user

import (
	"time"
)

// User is a guest who can hold reservations.
type User struct {
	id        int64
	name      Name
	email     Email
	createdAt time.Time
	updatedAt time.Time
}

// Draft is a user that has not been stored yet.
type Draft struct {
	Name  Name
	Email Email
}

func NewDraft(name, email string) (Draft, error) {
	n, err := NewName(name)
	if err != nil {
		return Draft{}, err
	}
	e, err := NewEmail(email)
	if err != nil {
		return Draft{}, err
	}
	return Draft{Name: n, Email: e}, nil
}

func ReconstructUser(id int64, name Name, email Email, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (u *User) ID() int64            { return u.id }
func (u *User) Name() Name           { return u.name }
func (u *User) Email() Email         { return u.email }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
