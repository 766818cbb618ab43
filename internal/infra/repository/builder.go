package repository

import (
	sq "github.com/Masterminds/squirrel"
)

// psql builds PostgreSQL statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	reservationsTable = "reservations"
	usersTable        = "users"

	// advisory lock namespace for per-table reservation locks
	tableLockNamespace int32 = 0x7462 // "tb"
)
