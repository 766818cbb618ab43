package converter

import (
	"table-booking/internal/domain/user"
	"table-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

// UserRow mirrors the users table.
type UserRow struct {
	ID        int64              `db:"id"`
	Name      string             `db:"name"`
	Email     string             `db:"email"`
	CreatedAt pgtype.Timestamptz `db:"created_at"`
	UpdatedAt pgtype.Timestamptz `db:"updated_at"`
}

var UserColumns = []string{"id", "name", "email", "created_at", "updated_at"}

// UserToDomain trusts stored values; they were validated on the way in.
func UserToDomain(row UserRow) *user.User {
	name, _ := user.NewName(row.Name)
	email, _ := user.NewEmail(row.Email)
	return user.ReconstructUser(
		row.ID,
		name,
		email,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}

func UsersToDomain(rows []UserRow) []*user.User {
	out := make([]*user.User, len(rows))
	for i, row := range rows {
		out[i] = UserToDomain(row)
	}
	return out
}
