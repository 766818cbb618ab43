package bootstrap

import (
	"table-booking/internal/domain/reservation"
	"table-booking/internal/pkg/clock"
	"table-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)

// PolicyModule derives the booking rules and the clock from an already
// provided config.Config.
var PolicyModule = fx.Module("policy",
	fx.Provide(
		NewPolicy,
		clock.NewRealClock,
	),
)

// NewPolicy assembles the booking rules from the restaurant settings.
func NewPolicy(cfg config.Config) (reservation.Policy, error) {
	rc := cfg.Restaurant

	layout, err := reservation.NewLayout(rc.MinTable, rc.MaxTable, rc.SeatsPerTable)
	if err != nil {
		return reservation.Policy{}, err
	}
	hours, err := reservation.NewBusinessHours(rc.TimeZone, rc.OpeningHour, rc.ClosingHour)
	if err != nil {
		return reservation.Policy{}, err
	}
	return reservation.NewPolicy(layout, hours, rc.ReservationDuration)
}
