//go:build unit

package commands_test

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/infra"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/commands"
	"table-booking/tests/common/memstore"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MockDecisionRecorder struct {
	mock.Mock
}

func (m *MockDecisionRecorder) RecordDecision(outcome string) {
	m.Called(outcome)
}

func utc(d, h, min int) time.Time {
	return time.Date(2024, 1, d, h, min, 0, 0, time.UTC)
}

func newPolicy(t *testing.T) reservation.Policy {
	t.Helper()
	layout, err := reservation.NewLayout(1, 5, 4)
	require.NoError(t, err)
	hours, err := reservation.NewBusinessHours("UTC", 19, 24)
	require.NoError(t, err)
	policy, err := reservation.NewPolicy(layout, hours, time.Hour)
	require.NoError(t, err)
	return policy
}

type ReservationCommandsSuite struct {
	suite.Suite
	store    *memstore.Store
	recorder *MockDecisionRecorder
	uc       commands.ReservationCommands
	userID   int64
}

func (s *ReservationCommandsSuite) SetupTest() {
	s.store = memstore.New()
	s.recorder = new(MockDecisionRecorder)
	s.recorder.On("RecordDecision", mock.Anything).Return()
	s.uc = commands.NewReservationCommands(s.store, newPolicy(s.T()), s.recorder)
	s.userID = s.store.SeedUser("Mario Rossi", "mario@example.com").ID()
}

func (s *ReservationCommandsSuite) input(table, seats int, at time.Time) commands.MakeReservationInput {
	return commands.MakeReservationInput{
		UserID: s.userID,
		Table:  reservation.TableNumber(table),
		Seats:  reservation.Seats(seats),
		Time:   at,
	}
}

func TestReservationCommandsSuite(t *testing.T) {
	suite.Run(t, new(ReservationCommandsSuite))
}

func (s *ReservationCommandsSuite) TestDecide_AcceptsOnEmptyLedger() {
	decision := s.uc.Decide(context.Background(), s.input(1, 2, utc(1, 20, 0)))

	s.Require().Equal(commands.StateAccepted, decision.State)
	s.Require().NotNil(decision.Reservation)
	s.Equal(reservation.TableNumber(1), decision.Reservation.Table())
	s.Equal(reservation.Seats(2), decision.Reservation.Seats())
	s.Equal(utc(1, 20, 0), decision.Reservation.Time())
	s.Len(s.store.Reservations(), 1)
	s.Equal(1, s.store.CallCount("LockTable"))
	s.recorder.AssertCalled(s.T(), "RecordDecision", "accepted")
}

func (s *ReservationCommandsSuite) TestDecide_FullTableSuggestsNextSlotAndFreeTables() {
	s.store.SeedReservation(s.userID, 2, 4, utc(1, 20, 0))
	s.store.SeedReservation(s.userID, 4, 1, utc(1, 20, 15))

	decision := s.uc.Decide(context.Background(), s.input(2, 1, utc(1, 20, 0)))

	s.Require().Equal(commands.StateRejectedWithAlternative, decision.State)
	s.Require().NotNil(decision.Alternative)
	s.True(decision.Alternative.Found)
	s.Equal(utc(1, 21, 0), decision.Alternative.NextAvailable)
	if diff := cmp.Diff([]reservation.TableNumber{1, 3, 5}, decision.Alternative.AvailableTables); diff != "" {
		s.T().Errorf("available tables mismatch (-want +got):\n%s", diff)
	}
	s.Len(s.store.Reservations(), 2, "a rejection writes nothing")
	s.Zero(s.store.CallCount("Create"))
	s.recorder.AssertCalled(s.T(), "RecordDecision", "rejected")
}

func (s *ReservationCommandsSuite) TestDecide_LateConflictRollsToNextOpening() {
	s.store.SeedReservation(s.userID, 2, 4, utc(1, 23, 30))

	decision := s.uc.Decide(context.Background(), s.input(2, 1, utc(1, 23, 30)))

	s.Require().Equal(commands.StateRejectedWithAlternative, decision.State)
	s.Equal(utc(2, 19, 0), decision.Alternative.NextAvailable)
}

func (s *ReservationCommandsSuite) TestDecide_LatestConflictDrivesSuggestion() {
	s.store.SeedReservation(s.userID, 1, 2, utc(1, 19, 30))
	s.store.SeedReservation(s.userID, 1, 2, utc(1, 20, 15))

	decision := s.uc.Decide(context.Background(), s.input(1, 1, utc(1, 20, 0)))

	s.Require().Equal(commands.StateRejectedWithAlternative, decision.State)
	s.Equal(utc(1, 21, 15), decision.Alternative.NextAvailable)
}

func (s *ReservationCommandsSuite) TestDecide_SeatSumDecidesCapacity() {
	s.store.SeedReservation(s.userID, 1, 2, utc(1, 20, 0))

	accepted := s.uc.Decide(context.Background(), s.input(1, 2, utc(1, 20, 30)))
	s.Equal(commands.StateAccepted, accepted.State)

	rejected := s.uc.Decide(context.Background(), s.input(1, 1, utc(1, 20, 45)))
	s.Equal(commands.StateRejectedWithAlternative, rejected.State)
}

func (s *ReservationCommandsSuite) TestDecide_BackToBackSlotsDoNotConflict() {
	s.store.SeedReservation(s.userID, 1, 4, utc(1, 20, 0))

	before := s.uc.Decide(context.Background(), s.input(1, 4, utc(1, 19, 0)))
	after := s.uc.Decide(context.Background(), s.input(1, 4, utc(1, 21, 0)))

	s.Equal(commands.StateAccepted, before.State)
	s.Equal(commands.StateAccepted, after.State)
}

func (s *ReservationCommandsSuite) TestDecide_Failures() {
	tests := []struct {
		name        string
		failOp      string
		userID      int64
		wantCode    errs.Code
		wantKind    error
		wantCreates int
	}{
		{name: "unknown user", userID: 999, wantCode: errs.CodeUserNotFound, wantKind: errs.ErrNotFound},
		{name: "user lookup fails", failOp: "Users.FindByID", wantCode: errs.CodeUserFetchFailed, wantKind: errs.ErrDependency},
		{name: "table lock fails", failOp: "LockTable", wantCode: errs.CodeReservationTableCheckFailed, wantKind: errs.ErrDependency},
		{name: "capacity query fails", failOp: "FindOverlapping", wantCode: errs.CodeReservationTableCheckFailed, wantKind: errs.ErrDependency},
		{name: "write fails", failOp: "Create", wantCode: errs.CodeReservationCreationFailed, wantKind: errs.ErrDependency, wantCreates: 1},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			if tt.failOp != "" {
				s.store.FailOn(tt.failOp, infra.WrapRepoErr("injected", assert.AnError, infra.KindDBFailure))
			}
			in := s.input(1, 2, utc(1, 20, 0))
			if tt.userID != 0 {
				in.UserID = tt.userID
			}

			decision := s.uc.Decide(context.Background(), in)

			s.Require().Equal(commands.StateFailed, decision.State)
			s.Require().NotNil(decision.Err)
			s.Equal(tt.wantCode, decision.Err.Code)
			s.ErrorIs(decision.Err, tt.wantKind)
			s.NotContains(decision.Err.Message, assert.AnError.Error())
			s.Empty(s.store.Reservations())
			s.Equal(tt.wantCreates, s.store.CallCount("Create"), "writes are never retried")
			s.recorder.AssertCalled(s.T(), "RecordDecision", "failed")
		})
	}
}

func (s *ReservationCommandsSuite) TestDecide_DeadlockOnWriteIsNotReplayed() {
	deadlock := infra.WrapRepoErr("insert reservation", &pgconn.PgError{Code: "40P01"})
	s.store.FailOn("Create", deadlock)

	decision := s.uc.Decide(context.Background(), s.input(1, 2, utc(1, 20, 0)))

	s.Require().Equal(commands.StateFailed, decision.State)
	s.Equal(errs.CodeReservationCreationFailed, decision.Err.Code)
	s.Equal(1, s.store.CallCount("uow.WithinOnce"))
	s.Zero(s.store.CallCount("uow.Within"))
	s.Equal(1, s.store.CallCount("LockTable"))
	s.Equal(1, s.store.CallCount("Create"))
}

func (s *ReservationCommandsSuite) TestDecide_AlternativeSearchFailure() {
	s.store.SeedReservation(s.userID, 2, 4, utc(1, 20, 0))
	s.store.FailOn("FindExactlyAt", infra.WrapRepoErr("injected", assert.AnError, infra.KindDBFailure))

	decision := s.uc.Decide(context.Background(), s.input(2, 1, utc(1, 20, 0)))

	s.Require().Equal(commands.StateFailed, decision.State)
	s.Equal(errs.CodeReservationTableCheckFailed, decision.Err.Code)
}

func (s *ReservationCommandsSuite) TestMakeReservation_RejectionIsConflictWithAlternative() {
	s.store.SeedReservation(s.userID, 2, 4, utc(1, 20, 0))

	created, err := s.uc.MakeReservation(context.Background(), s.input(2, 1, utc(1, 20, 0)))

	s.Nil(created)
	s.Require().ErrorIs(err, errs.ErrConflict)
	appErr, ok := errs.AsAppError(err)
	s.Require().True(ok)
	s.Equal(errs.CodeOverbookingNotAllowed, appErr.Code)
	s.Equal("This table is fully booked. Try again after 2024-01-01T21:00:00.000Z (UTC). Or you can select another table. Available tables: 1, 3, 4, 5", appErr.Message)
	s.Equal(commands.AlternativeView{
		NextAvailable:   "2024-01-01T21:00:00.000Z",
		AvailableTables: []int{1, 3, 4, 5},
	}, appErr.Data)
}

func (s *ReservationCommandsSuite) TestMakeReservation_Accepted() {
	created, err := s.uc.MakeReservation(context.Background(), s.input(3, 4, utc(1, 22, 0)))

	s.Require().NoError(err)
	s.Equal(reservation.TableNumber(3), created.Table())
}

func (s *ReservationCommandsSuite) TestDecide_ConcurrentRequestsNeverOverbook() {
	policy := newPolicy(s.T())
	rng := rand.New(rand.NewSource(42))

	inputs := make([]commands.MakeReservationInput, 200)
	for i := range inputs {
		inputs[i] = s.input(
			1+rng.Intn(2),
			1+rng.Intn(4),
			utc(1, 19+rng.Intn(5), 15*rng.Intn(4)),
		)
	}

	var wg sync.WaitGroup
	for _, in := range inputs {
		wg.Add(1)
		go func(in commands.MakeReservationInput) {
			defer wg.Done()
			decision := s.uc.Decide(context.Background(), in)
			s.NotEqual(commands.StateFailed, decision.State)
		}(in)
	}
	wg.Wait()

	stored := s.store.Reservations()
	s.NotEmpty(stored)
	for _, r := range stored {
		var sum reservation.Seats
		for _, other := range stored {
			if other.Table() == r.Table() && other.Overlaps(r.Time(), policy.Duration) {
				sum += other.Seats()
			}
		}
		s.LessOrEqual(int(sum), 4, fmt.Sprintf("table %d at %s is overbooked", r.Table(), r.Time()))
	}
}

func (s *ReservationCommandsSuite) TestCancelReservation() {
	tests := []struct {
		name     string
		failOp   string
		id       func(existing int64) int64
		wantCode errs.Code
	}{
		{name: "deletes existing", id: func(existing int64) int64 { return existing }},
		{name: "unknown id", id: func(int64) int64 { return 999 }, wantCode: errs.CodeReservationNotFound},
		{name: "lookup fails", failOp: "FindByID", id: func(existing int64) int64 { return existing }, wantCode: errs.CodeReservationFetchFailed},
		{name: "delete fails", failOp: "Delete", id: func(existing int64) int64 { return existing }, wantCode: errs.CodeReservationDeletionFailed},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			existing := s.store.SeedReservation(s.userID, 1, 2, utc(1, 20, 0))
			if tt.failOp != "" {
				s.store.FailOn(tt.failOp, infra.WrapRepoErr("injected", assert.AnError, infra.KindDBFailure))
			}

			err := s.uc.CancelReservation(context.Background(), tt.id(existing.ID()))

			if tt.wantCode == "" {
				s.Require().NoError(err)
				s.Empty(s.store.Reservations())
				return
			}
			appErr, ok := errs.AsAppError(err)
			s.Require().True(ok)
			s.Equal(tt.wantCode, appErr.Code)
			s.Len(s.store.Reservations(), 1)
		})
	}
}

func (s *ReservationCommandsSuite) TestCancelReservation_NotFoundKind() {
	err := s.uc.CancelReservation(context.Background(), 12345)

	s.ErrorIs(err, errs.ErrNotFound)
}
