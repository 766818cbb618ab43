package infra

import (
	"errors"
	"log/slog"

	"table-booking/internal/pkg/errs"
	"table-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindCheckViolated      RepositoryErrorKind = "CHECK_VIOLATED"
)

// SQLSTATE codes for integrity violations raised by the booking schema.
var integrityKinds = map[string]RepositoryErrorKind{
	"23505": KindDuplicateKey,
	"23503": KindForeignKeyViolated,
	"23514": KindCheckViolated,
}

// RepositoryError is the only error shape repositories return. Constraint is
// the violated constraint name when PostgreSQL reported one.
type RepositoryError struct {
	Kind       RepositoryErrorKind
	Constraint string
	msg        string
	err        error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr classifies err and wraps it with msg. An explicit kind wins over
// the classification derived from the PostgreSQL error code.
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	k, constraint := classify(err)
	if len(kind) > 0 {
		k = kind[0]
	}
	if err != nil {
		err = errs.Wrap(err, msg)
	}

	attrs := []any{slog.String("kind", string(k))}
	if constraint != "" {
		attrs = append(attrs, slog.String("constraint", constraint))
	}
	if k == KindDBFailure {
		attrs = append(attrs, slog.Any("error", err), slog.Any("stack", errs.StackLines(err, 6)))
		slog.Error("Repository error: "+msg, attrs...)
	} else {
		slog.Debug("Repository error: "+msg, attrs...)
	}

	return RepositoryError{Kind: k, Constraint: constraint, msg: msg, err: err}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func classify(err error) (RepositoryErrorKind, string) {
	if pgconv.IsNoRows(err) {
		return KindNotFound, ""
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if k, ok := integrityKinds[pgErr.Code]; ok {
			return k, pgErr.ConstraintName
		}
	}
	return KindDBFailure, ""
}
