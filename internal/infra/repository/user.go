package repository

import (
	"context"
	"strings"

	"table-booking/internal/domain/user"
	"table-booking/internal/infra"
	"table-booking/internal/infra/db"
	"table-booking/internal/infra/repository/converter"
	"table-booking/internal/pkg/pgconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) FindByID(ctx context.Context, db db.DBTX, id int64) (*user.User, error) {
	return r.findOne(ctx, db, sq.Eq{"id": id}, "failed to find user by ID")
}

func (r *UserRepository) FindByEmail(ctx context.Context, db db.DBTX, email user.Email) (*user.User, error) {
	return r.findOne(ctx, db, sq.Eq{"email": email.Value()}, "failed to find user by email")
}

func (r *UserRepository) Create(ctx context.Context, db db.DBTX, draft user.Draft) (*user.User, error) {
	sql, args, err := psql.Insert(usersTable).
		Columns("name", "email").
		Values(draft.Name.Value(), draft.Email.Value()).
		Suffix("RETURNING " + columnList(converter.UserColumns)).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build insert user query", err, infra.KindDBFailure)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create user", err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[converter.UserRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create user", err)
	}

	return converter.UserToDomain(row), nil
}

func (r *UserRepository) List(ctx context.Context, db db.DBTX) ([]*user.User, error) {
	sql, args, err := selectUsers().OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build list users query", err, infra.KindDBFailure)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.UserRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err, infra.KindDBFailure)
	}

	return converter.UsersToDomain(collected), nil
}

func (r *UserRepository) findOne(ctx context.Context, db db.DBTX, pred sq.Eq, msg string) (*user.User, error) {
	sql, args, err := selectUsers().Where(pred).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err, infra.KindDBFailure)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[converter.UserRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr(msg, err)
	}

	return converter.UserToDomain(row), nil
}

func selectUsers() sq.SelectBuilder {
	return psql.Select(converter.UserColumns...).From(usersTable)
}

func columnList(cols []string) string {
	return strings.Join(cols, ", ")
}
