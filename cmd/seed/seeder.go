package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/pkg/clock"

	"golang.org/x/sync/errgroup"
)

const maxConcurrentRegistrations = 4

type seeder struct {
	client *client
	policy reservation.Policy
	clock  clock.Clock
	rnd    *rand.Rand
	logger *slog.Logger
}

func (s *seeder) run(ctx context.Context, gs []guest) error {
	users, err := s.registerAll(ctx, gs)
	if err != nil {
		return err
	}

	window := s.policy.Hours.WindowAt(s.clock.Now())
	tables := s.policy.Layout.Tables()
	for _, u := range users {
		req := bookingRequest{
			UserID:          u.ID,
			TableNumber:     tables[s.rnd.IntN(len(tables))].Int(),
			NumberOfSeats:   s.policy.Layout.SeatsPerTable().Int(),
			ReservationTime: reservation.FormatUTC(pickSlot(window, s.clock.Now(), s.rnd)),
		}

		refused, err := s.client.book(ctx, req)
		switch {
		case err != nil:
			s.logger.Error("booking request failed", "user_id", u.ID, "error", err)
		case refused != nil:
			s.logger.Warn("booking refused",
				"user_id", u.ID, "table", req.TableNumber, "time", req.ReservationTime,
				"code", refused.Error.Code, "message", refused.Error.Message)
		default:
			s.logger.Info("booking created",
				"user_id", u.ID, "table", req.TableNumber, "time", req.ReservationTime, "seats", req.NumberOfSeats)
		}
	}
	return nil
}

// registerAll creates every guest concurrently; an already registered email
// is looked up instead. The result order is unspecified.
func (s *seeder) registerAll(ctx context.Context, gs []guest) ([]registeredUser, error) {
	var (
		mu    sync.Mutex
		users = make([]registeredUser, 0, len(gs))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRegistrations)
	for _, gst := range gs {
		g.Go(func() error {
			u, err := s.client.createUser(ctx, gst)
			if errors.Is(err, errEmailTaken) {
				u, err = s.client.findUserByEmail(ctx, gst.Email)
			}
			if err != nil {
				return err
			}

			mu.Lock()
			users = append(users, u)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return users, nil
}

// pickSlot returns a random minute inside the window that opens on the UTC
// date of day.
func pickSlot(window reservation.BusinessWindow, day time.Time, rnd *rand.Rand) time.Time {
	d := day.UTC()
	opening := time.Date(d.Year(), d.Month(), d.Day(), window.OpeningHourUTC(), 0, 0, 0, time.UTC)

	hours := (window.ClosingHourUTC() - window.OpeningHourUTC() + 24) % 24
	if hours == 0 {
		hours = 24
	}
	return opening.Add(time.Duration(rnd.IntN(hours*60)) * time.Minute)
}
