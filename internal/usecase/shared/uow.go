package shared

import (
	"context"
	"time"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/domain/user"
	"table-booking/internal/infra/db"
)

type UnitOfWork interface {
	// Within: ReadCommitted transaction for writes, retried on serialization failures and deadlocks
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinOnce: ReadCommitted transaction attempted exactly once; for work that must not be replayed
	WithinOnce(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinSerializable: Serializable transaction for check-then-write sequences
	WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-query consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Reservations() ReservationLedger
	Users() UserRepository
	DB() db.DBTX
}

// ReservationLedger is the durable record of accepted reservations.
type ReservationLedger interface {
	// FindOverlapping returns bookings on table starting inside the open
	// interval (instant-duration, instant+duration), oldest first.
	FindOverlapping(ctx context.Context, db db.DBTX, table reservation.TableNumber, instant time.Time, duration time.Duration) ([]*reservation.Reservation, error)
	// FindExactlyAt returns bookings on table starting in [instant, instant+duration).
	FindExactlyAt(ctx context.Context, db db.DBTX, table reservation.TableNumber, instant time.Time, duration time.Duration) ([]*reservation.Reservation, error)
	Create(ctx context.Context, db db.DBTX, draft reservation.Draft) (*reservation.Reservation, error)
	Delete(ctx context.Context, db db.DBTX, id int64) error
	FindByID(ctx context.Context, db db.DBTX, id int64) (*reservation.Reservation, error)
	FindInRange(ctx context.Context, db db.DBTX, filter RangeFilter) ([]*reservation.Reservation, error)
	// LockTable serialises writers of one table until the transaction ends.
	LockTable(ctx context.Context, db db.DBTX, table reservation.TableNumber) error
}

type UserRepository interface {
	FindByID(ctx context.Context, db db.DBTX, id int64) (*user.User, error)
	FindByEmail(ctx context.Context, db db.DBTX, email user.Email) (*user.User, error)
	Create(ctx context.Context, db db.DBTX, draft user.Draft) (*user.User, error)
	List(ctx context.Context, db db.DBTX) ([]*user.User, error)
}
