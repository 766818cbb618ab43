package queries

import (
	"context"

	"table-booking/internal/domain/user"
	"table-booking/internal/infra"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"
)

//go:generate mockgen -source=user.go -destination=../../../tests/mock/queries/user_mock.go -package=queriesmock
type UserQueries interface {
	// ListUsers returns every user, or only the one registered with email.
	ListUsers(ctx context.Context, email *user.Email) ([]UserView, error)
}

type userQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewUserQueries(uow shared.UnitOfWork) UserQueries {
	return &userQueriesImpl{uow: uow}
}

func (q *userQueriesImpl) ListUsers(ctx context.Context, email *user.Email) ([]UserView, error) {
	var found []*user.User
	err := q.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		if email == nil {
			var err error
			found, err = tx.Users().List(ctx, tx.DB())
			return err
		}

		u, err := tx.Users().FindByEmail(ctx, tx.DB(), *email)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil
			}
			return err
		}
		found = []*user.User{u}
		return nil
	})
	if err != nil {
		return nil, errs.FromCause(errs.CodeUserListFailed, err)
	}

	views := make([]UserView, len(found))
	for i, u := range found {
		views[i] = ToUserView(u)
	}
	return views, nil
}
