package errs

import "errors"

// Kind sentinels. AppError.Is matches these so callers can branch with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrDependency = errors.New("dependency failure")
)

// Domain validation sentinels returned by value constructors.
var (
	ErrInvalidTimeFormat     = errors.New("invalid time format")
	ErrTimeNotUTC            = errors.New("time must be expressed in UTC")
	ErrTableOutOfRange       = errors.New("table number out of range")
	ErrInvalidSeats          = errors.New("invalid number of seats")
	ErrOutsideBusinessHours  = errors.New("outside business hours")
	ErrInvalidDateRange      = errors.New("invalid date range")
	ErrInvalidBusinessConfig = errors.New("invalid business configuration")
)
