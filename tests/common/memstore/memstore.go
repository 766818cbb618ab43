//go:build unit

// Package memstore is an in-memory ledger and user directory behind the
// shared.UnitOfWork port. Transactions are serialised and rolled back on error.
package memstore

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/domain/user"
	"table-booking/internal/infra"
	"table-booking/internal/infra/db"
	"table-booking/internal/usecase/shared"
)

type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	reservations []*reservation.Reservation
	users        map[int64]*user.User
	nextResID    int64
	nextUserID   int64
	failures     map[string]error
	calls        []string
	now          time.Time
}

func New() *Store {
	return &Store{
		users:      make(map[int64]*user.User),
		nextResID:  1,
		nextUserID: 1,
		failures:   make(map[string]error),
		now:        time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// FailOn makes every later call of op return err.
func (s *Store) FailOn(op string, err error) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
	return s
}

func (s *Store) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.calls)
}

func (s *Store) CallCount(op string) int {
	n := 0
	for _, c := range s.Calls() {
		if c == op {
			n++
		}
	}
	return n
}

// SeedUser stores a user directly and returns it.
func (s *Store) SeedUser(name, email string) *user.User {
	draft, err := user.NewDraft(name, email)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user.ReconstructUser(s.nextUserID, draft.Name, draft.Email, s.now, s.now)
	s.users[u.ID()] = u
	s.nextUserID++
	return u
}

// SeedReservation stores a booking directly, bypassing every rule.
func (s *Store) SeedReservation(userID int64, table, seats int, at time.Time) *reservation.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := reservation.ReconstructReservation(s.nextResID, userID,
		reservation.TableNumber(table), reservation.Seats(seats), at, s.now, s.now)
	s.reservations = append(s.reservations, r)
	s.nextResID++
	return r
}

func (s *Store) Reservations() []*reservation.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.reservations)
}

func (s *Store) record(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, op)
	return s.failures[op]
}

// UnitOfWork

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return s.inTx(ctx, "uow.Within", fn)
}

func (s *Store) WithinOnce(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return s.inTx(ctx, "uow.WithinOnce", fn)
}

func (s *Store) WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return s.inTx(ctx, "uow.WithinSerializable", fn)
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return s.inTx(ctx, "uow.WithinReadOnly", fn)
}

func (s *Store) WithDB(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, tx{s})
}

// inTx records the transaction kind as "uow.<Method>" so tests can assert
// which isolation a use case asked for.
func (s *Store) inTx(ctx context.Context, kind string, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := s.record(kind); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	savedReservations := slices.Clone(s.reservations)
	savedUsers := make(map[int64]*user.User, len(s.users))
	for k, v := range s.users {
		savedUsers[k] = v
	}
	s.mu.Unlock()

	if err := fn(ctx, tx{s}); err != nil {
		s.mu.Lock()
		s.reservations = savedReservations
		s.users = savedUsers
		s.mu.Unlock()
		return err
	}
	return nil
}

type tx struct{ s *Store }

func (t tx) Reservations() shared.ReservationLedger { return ledger{t.s} }
func (t tx) Users() shared.UserRepository           { return users{t.s} }
func (t tx) DB() db.DBTX                            { return nil }

type ledger struct{ s *Store }

func (l ledger) filter(keep func(r *reservation.Reservation) bool) []*reservation.Reservation {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	var out []*reservation.Reservation
	for _, r := range l.s.reservations {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Time().Equal(out[j].Time()) {
			return out[i].ID() < out[j].ID()
		}
		return out[i].Time().Before(out[j].Time())
	})
	return out
}

func (l ledger) FindOverlapping(_ context.Context, _ db.DBTX, table reservation.TableNumber, instant time.Time, duration time.Duration) ([]*reservation.Reservation, error) {
	if err := l.s.record("FindOverlapping"); err != nil {
		return nil, err
	}
	return l.filter(func(r *reservation.Reservation) bool {
		return r.Table() == table && r.Overlaps(instant, duration)
	}), nil
}

func (l ledger) FindExactlyAt(_ context.Context, _ db.DBTX, table reservation.TableNumber, instant time.Time, duration time.Duration) ([]*reservation.Reservation, error) {
	if err := l.s.record("FindExactlyAt"); err != nil {
		return nil, err
	}
	end := instant.Add(duration)
	return l.filter(func(r *reservation.Reservation) bool {
		return r.Table() == table && !r.Time().Before(instant) && r.Time().Before(end)
	}), nil
}

func (l ledger) Create(_ context.Context, _ db.DBTX, draft reservation.Draft) (*reservation.Reservation, error) {
	if err := l.s.record("Create"); err != nil {
		return nil, err
	}
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	if _, ok := l.s.users[draft.UserID]; !ok {
		return nil, infra.WrapRepoErr("user does not exist", nil, infra.KindForeignKeyViolated)
	}
	r := reservation.ReconstructReservation(l.s.nextResID, draft.UserID, draft.Table, draft.Seats, draft.Time, l.s.now, l.s.now)
	l.s.reservations = append(l.s.reservations, r)
	l.s.nextResID++
	return r, nil
}

func (l ledger) Delete(_ context.Context, _ db.DBTX, id int64) error {
	if err := l.s.record("Delete"); err != nil {
		return err
	}
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	for i, r := range l.s.reservations {
		if r.ID() == id {
			l.s.reservations = slices.Delete(l.s.reservations, i, i+1)
			return nil
		}
	}
	return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
}

func (l ledger) FindByID(_ context.Context, _ db.DBTX, id int64) (*reservation.Reservation, error) {
	if err := l.s.record("FindByID"); err != nil {
		return nil, err
	}
	found := l.filter(func(r *reservation.Reservation) bool { return r.ID() == id })
	if len(found) == 0 {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return found[0], nil
}

func (l ledger) FindInRange(_ context.Context, _ db.DBTX, filter shared.RangeFilter) ([]*reservation.Reservation, error) {
	if err := l.s.record("FindInRange"); err != nil {
		return nil, err
	}
	all := l.filter(func(r *reservation.Reservation) bool {
		if r.Time().Before(filter.Start) || r.Time().After(filter.End) {
			return false
		}
		return filter.Table == nil || r.Table() == *filter.Table
	})
	offset, limit := int(filter.Offset()), int(filter.Limit())
	if offset >= len(all) {
		return nil, nil
	}
	return all[offset:min(offset+limit, len(all))], nil
}

func (l ledger) LockTable(_ context.Context, _ db.DBTX, _ reservation.TableNumber) error {
	return l.s.record("LockTable")
}

type users struct{ s *Store }

func (u users) FindByID(_ context.Context, _ db.DBTX, id int64) (*user.User, error) {
	if err := u.s.record("Users.FindByID"); err != nil {
		return nil, err
	}
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	found, ok := u.s.users[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return found, nil
}

func (u users) FindByEmail(_ context.Context, _ db.DBTX, email user.Email) (*user.User, error) {
	if err := u.s.record("Users.FindByEmail"); err != nil {
		return nil, err
	}
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, found := range u.s.users {
		if found.Email() == email {
			return found, nil
		}
	}
	return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

func (u users) Create(_ context.Context, _ db.DBTX, draft user.Draft) (*user.User, error) {
	if err := u.s.record("Users.Create"); err != nil {
		return nil, err
	}
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, found := range u.s.users {
		if found.Email() == draft.Email {
			return nil, infra.WrapRepoErr("duplicate email", nil, infra.KindDuplicateKey)
		}
	}
	created := user.ReconstructUser(u.s.nextUserID, draft.Name, draft.Email, u.s.now, u.s.now)
	u.s.users[created.ID()] = created
	u.s.nextUserID++
	return created, nil
}

func (u users) List(_ context.Context, _ db.DBTX) ([]*user.User, error) {
	if err := u.s.record("Users.List"); err != nil {
		return nil, err
	}
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	out := make([]*user.User, 0, len(u.s.users))
	for _, found := range u.s.users {
		out = append(out, found)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}
