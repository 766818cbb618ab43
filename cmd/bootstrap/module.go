package bootstrap

import (
	"table-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// Module is the full production graph; e2e suites reuse everything except
// ConfigModule and DBModule.
var Module = fx.Options(
	ConfigModule,
	PolicyModule,
	LoggerModule,
	DBModule,
	MetricsModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
