// Command seed fills a running server with a few users and random bookings.
// Users are registered concurrently; bookings are sent one by one and may be
// rejected when a table fills up.
package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	"table-booking/cmd/bootstrap"
	"table-booking/internal/pkg/clock"
	"table-booking/internal/pkg/config"

	"github.com/kelseyhightower/envconfig"
)

type seedConfig struct {
	BaseURL    string        `envconfig:"SEED_BASE_URL" default:"http://localhost:8080/api/v1"`
	Timeout    time.Duration `envconfig:"SEED_TIMEOUT" default:"10s"`
	Restaurant config.RestaurantConfig
}

var guests = []guest{
	{Name: "John Doe", Email: "john@example.com"},
	{Name: "Jane Doe", Email: "jane@example.com"},
	{Name: "Alice Smith", Email: "alice@example.com"},
	{Name: "Bob Brown", Email: "bob@example.com"},
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	var cfg seedConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logger.Error("failed to process env config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Restaurant.Validate(); err != nil {
		logger.Error("invalid restaurant config", "error", err)
		os.Exit(1)
	}

	policy, err := bootstrap.NewPolicy(config.Config{Restaurant: cfg.Restaurant})
	if err != nil {
		logger.Error("failed to build booking policy", "error", err)
		os.Exit(1)
	}

	s := &seeder{
		client: newClient(cfg.BaseURL, &http.Client{Timeout: cfg.Timeout}),
		policy: policy,
		clock:  clock.NewRealClock(),
		rnd:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		logger: logger,
	}

	if err := s.run(context.Background(), guests); err != nil {
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	logger.Info("seeding completed")
}
