package user

import (
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidEmail = errors.New("invalid email format")
	ErrInvalidName  = errors.New("name must be between 1 and 100 characters")
)

const (
	maxNameLength  = 100
	maxEmailLength = 254
)

// Email is a normalized address: trimmed, lower-cased, bare addr-spec only.
// Uniqueness in the directory is therefore case-insensitive.
type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || len(s) > maxEmailLength {
		return Email{}, ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(s)
	// Reject display-name forms like "Ann <ann@x.io>" and dotless domains.
	if err != nil || addr.Address != s || !strings.Contains(s[strings.LastIndexByte(s, '@'):], ".") {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string  { return e.value }
func (e Email) String() string { return e.value }

type Name struct {
	value string
}

// NewName trims surrounding space and counts runes, not bytes.
func NewName(s string) (Name, error) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > maxNameLength {
		return Name{}, ErrInvalidName
	}
	return Name{value: s}, nil
}

func (n Name) Value() string  { return n.value }
func (n Name) String() string { return n.value }
