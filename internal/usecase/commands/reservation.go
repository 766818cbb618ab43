package commands

import (
	"context"
	"log/slog"
	"time"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/infra"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"
)

type DecisionState string

const (
	StatePending                 DecisionState = "pending"
	StateAccepted                DecisionState = "accepted"
	StateRejectedWithAlternative DecisionState = "rejected"
	StateFailed                  DecisionState = "failed"
)

// Decision is the terminal outcome of one reservation request.
type Decision struct {
	State       DecisionState
	Reservation *reservation.Reservation
	Alternative *reservation.Alternative
	Err         *errs.AppError
}

// Result flattens the decision into the usual value/error pair. A rejection
// becomes an OVERBOOKING_NOT_ALLOWED conflict carrying the alternative.
func (d Decision) Result() (*reservation.Reservation, error) {
	switch d.State {
	case StateAccepted:
		return d.Reservation, nil
	case StateRejectedWithAlternative:
		return nil, errs.NewAppError(errs.CodeOverbookingNotAllowed).
			WithMessage(d.Alternative.Message()).
			WithData(NewAlternativeView(*d.Alternative))
	default:
		if d.Err != nil {
			return nil, d.Err
		}
		return nil, errs.NewAppError(errs.CodeGeneralInternalServerError)
	}
}

// AlternativeView is the wire form of a suggested alternative.
type AlternativeView struct {
	NextAvailable   string `json:"nextAvailable,omitempty"`
	AvailableTables []int  `json:"availableTables"`
}

func NewAlternativeView(alt reservation.Alternative) AlternativeView {
	view := AlternativeView{AvailableTables: make([]int, len(alt.AvailableTables))}
	if alt.Found {
		view.NextAvailable = reservation.FormatUTC(alt.NextAvailable)
	}
	for i, t := range alt.AvailableTables {
		view.AvailableTables[i] = t.Int()
	}
	return view
}

type MakeReservationInput struct {
	UserID int64
	Table  reservation.TableNumber
	Seats  reservation.Seats
	Time   time.Time
}

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/reservation_mock.go -package=commandsmock
type ReservationCommands interface {
	MakeReservation(ctx context.Context, in MakeReservationInput) (*reservation.Reservation, error)
	Decide(ctx context.Context, in MakeReservationInput) Decision
	CancelReservation(ctx context.Context, id int64) error
}

type reservationCommandsImpl struct {
	uow      shared.UnitOfWork
	policy   reservation.Policy
	recorder shared.DecisionRecorder
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	policy reservation.Policy,
	recorder shared.DecisionRecorder,
) ReservationCommands {
	if recorder == nil {
		recorder = shared.NopDecisionRecorder{}
	}
	return &reservationCommandsImpl{
		uow:      uow,
		policy:   policy,
		recorder: recorder,
	}
}

func (uc *reservationCommandsImpl) MakeReservation(ctx context.Context, in MakeReservationInput) (*reservation.Reservation, error) {
	return uc.Decide(ctx, in).Result()
}

// Decide runs user lookup, capacity check, alternative search and write.
// The check and the write share one transaction holding the table's advisory
// lock, so concurrent requests cannot both take the last seats. Read committed
// is enough: every statement after the lock sees rows committed before it.
// The transaction is attempted once; a failed write ends in StateFailed and is
// never replayed here.
func (uc *reservationCommandsImpl) Decide(ctx context.Context, in MakeReservationInput) Decision {
	draft := reservation.NewDraft(in.UserID, in.Table, in.Seats, in.Time)
	logger := slog.With(
		slog.Int64("user_id", draft.UserID),
		slog.Int("table", draft.Table.Int()),
		slog.Int("seats", draft.Seats.Int()),
		slog.String("instant", reservation.FormatUTC(draft.Time)),
	)

	decision := uc.decide(ctx, draft)
	uc.recorder.RecordDecision(string(decision.State))

	switch decision.State {
	case StateAccepted:
		logger.Info("reservation accepted", slog.Int64("reservation_id", decision.Reservation.ID()))
	case StateRejectedWithAlternative:
		logger.Info("reservation rejected",
			slog.Bool("alternative_found", decision.Alternative.Found),
			slog.String("available_tables", reservation.JoinTables(decision.Alternative.AvailableTables)))
	default:
		logger.Error("reservation failed",
			slog.String("code", string(decision.Err.Code)),
			slog.Any("error", decision.Err),
			slog.Any("stack", errs.StackLines(decision.Err.Unwrap(), 8)))
	}
	return decision
}

func (uc *reservationCommandsImpl) decide(ctx context.Context, draft reservation.Draft) Decision {
	if appErr := uc.lookupUser(ctx, draft.UserID); appErr != nil {
		return failed(appErr)
	}

	decision := Decision{State: StatePending}
	err := uc.uow.WithinOnce(ctx, func(ctx context.Context, tx shared.Tx) error {
		ledger := tx.Reservations()

		if err := ledger.LockTable(ctx, tx.DB(), draft.Table); err != nil {
			return errs.FromCause(errs.CodeReservationTableCheckFailed, err)
		}

		check, err := uc.checkCapacity(ctx, tx, draft)
		if err != nil {
			return err
		}

		if !check.Admissible() {
			alt, err := uc.findAlternative(ctx, tx, draft, check.Conflicts)
			if err != nil {
				return err
			}
			decision = Decision{State: StateRejectedWithAlternative, Alternative: &alt}
			return nil
		}

		created, err := ledger.Create(ctx, tx.DB(), draft)
		if err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return errs.FromCause(errs.CodeUserNotFound, err)
			}
			return errs.FromCause(errs.CodeReservationCreationFailed, err)
		}
		decision = Decision{State: StateAccepted, Reservation: created}
		return nil
	})
	if err != nil {
		if appErr, ok := errs.AsAppError(err); ok {
			return failed(appErr)
		}
		// Commit failures land here; the ledger state is unknown to the caller.
		code := errs.CodeReservationTableCheckFailed
		if decision.State == StateAccepted {
			code = errs.CodeReservationCreationFailed
		}
		return failed(errs.FromCause(code, err))
	}
	return decision
}

func (uc *reservationCommandsImpl) lookupUser(ctx context.Context, userID int64) *errs.AppError {
	err := uc.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Users().FindByID(ctx, tx.DB(), userID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.FromCause(errs.CodeUserNotFound, err)
			}
			return errs.FromCause(errs.CodeUserFetchFailed, err)
		}
		return nil
	})
	if err == nil {
		return nil
	}
	if appErr, ok := errs.AsAppError(err); ok {
		return appErr
	}
	return errs.FromCause(errs.CodeUserFetchFailed, err)
}

func (uc *reservationCommandsImpl) checkCapacity(ctx context.Context, tx shared.Tx, draft reservation.Draft) (reservation.CapacityCheck, error) {
	existing, err := tx.Reservations().FindOverlapping(ctx, tx.DB(), draft.Table, draft.Time, uc.policy.Duration)
	if err != nil {
		return reservation.CapacityCheck{}, errs.FromCause(errs.CodeReservationTableCheckFailed, err)
	}
	return reservation.CheckCapacity(uc.policy.Layout.SeatsPerTable(), draft.Seats, existing), nil
}

func (uc *reservationCommandsImpl) findAlternative(
	ctx context.Context,
	tx shared.Tx,
	draft reservation.Draft,
	conflicts []*reservation.Reservation,
) (reservation.Alternative, error) {
	next, found := reservation.NextSlotAfter(conflicts, uc.policy.Duration, uc.policy.Hours, draft.Time)

	tables := uc.policy.Layout.Tables()
	occupied := make(map[reservation.TableNumber]int, len(tables))
	for _, t := range tables {
		existing, err := tx.Reservations().FindExactlyAt(ctx, tx.DB(), t, draft.Time, uc.policy.Duration)
		if err != nil {
			return reservation.Alternative{}, errs.FromCause(errs.CodeReservationTableCheckFailed, err)
		}
		occupied[t] = len(existing)
	}

	return reservation.Alternative{
		NextAvailable:   next,
		AvailableTables: reservation.FreeTables(tables, occupied),
		Found:           found,
	}, nil
}

func (uc *reservationCommandsImpl) CancelReservation(ctx context.Context, id int64) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ledger := tx.Reservations()

		if _, err := ledger.FindByID(ctx, tx.DB(), id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.FromCause(errs.CodeReservationNotFound, err)
			}
			return errs.FromCause(errs.CodeReservationFetchFailed, err)
		}

		if err := ledger.Delete(ctx, tx.DB(), id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.FromCause(errs.CodeReservationNotFound, err)
			}
			return errs.FromCause(errs.CodeReservationDeletionFailed, err)
		}

		slog.Info("reservation cancelled", slog.Int64("reservation_id", id))
		return nil
	})
}

func failed(appErr *errs.AppError) Decision {
	return Decision{State: StateFailed, Err: appErr}
}
