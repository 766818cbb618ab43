package request

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"table-booking/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// BindingError turns a gin binding failure into a validation error whose
// details name each offending field.
func BindingError(err error) *errs.AppError {
	appErr := errs.FromCause(errs.CodeGeneralValidationFailed, err)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return appErr.WithDetails("The request could not be parsed.")
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeField(fe))
	}
	return appErr.WithDetails(strings.Join(msgs, "; "))
}

// DomainError maps a domain validation failure onto the catalogue.
func DomainError(err error) *errs.AppError {
	code := errs.CodeGeneralValidationFailed
	if errors.Is(err, errs.ErrInvalidTimeFormat) || errors.Is(err, errs.ErrTimeNotUTC) {
		code = errs.CodeInvalidDateFormat
	}
	return errs.FromCause(code, err).WithDetails(err.Error())
}

func describeField(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
