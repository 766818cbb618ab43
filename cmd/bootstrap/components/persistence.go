package components

import (
	"table-booking/internal/infra/repository"
	"table-booking/internal/infra/uow"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		repository.NewReservationRepository,
		repository.NewUserRepository,
		uow.NewPostgresUoW,
	),
)
