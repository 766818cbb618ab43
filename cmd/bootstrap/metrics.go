package bootstrap

import (
	"table-booking/internal/infra/metrics"
	"table-booking/internal/pkg/config"
	"table-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		func(m *metrics.Metrics) shared.DecisionRecorder { return m },
	),
)

func NewMetrics(cfg config.Config) *metrics.Metrics {
	return metrics.New(cfg.Metrics.Namespace)
}
