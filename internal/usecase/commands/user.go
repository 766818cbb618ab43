package commands

import (
	"context"
	"log/slog"

	"table-booking/internal/domain/user"
	"table-booking/internal/infra"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"
)

//go:generate mockgen -source=user.go -destination=../../../tests/mock/commands/user_mock.go -package=commandsmock
type UserCommands interface {
	RegisterUser(ctx context.Context, draft user.Draft) (*user.User, error)
}

type userCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewUserCommands(uow shared.UnitOfWork) UserCommands {
	return &userCommandsImpl{uow: uow}
}

func (uc *userCommandsImpl) RegisterUser(ctx context.Context, draft user.Draft) (*user.User, error) {
	var created *user.User
	err := uc.uow.WithinSerializable(ctx, func(ctx context.Context, tx shared.Tx) error {
		users := tx.Users()

		_, err := users.FindByEmail(ctx, tx.DB(), draft.Email)
		switch {
		case err == nil:
			return errs.NewAppError(errs.CodeUserEmailAlreadyExists)
		case !infra.IsKind(err, infra.KindNotFound):
			return errs.FromCause(errs.CodeUserEmailCheckFailed, err)
		}

		created, err = users.Create(ctx, tx.DB(), draft)
		if err != nil {
			// lost a race against a concurrent registration
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.FromCause(errs.CodeUserEmailAlreadyExists, err)
			}
			return errs.FromCause(errs.CodeUserCreationFailed, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("user registered", slog.Int64("user_id", created.ID()))
	return created, nil
}
