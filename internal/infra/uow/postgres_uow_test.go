//go:build unit

package uow

import (
	"context"
	"testing"
	"time"

	"table-booking/internal/infra"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTx only supports the calls the retry loop makes.
type stubTx struct {
	pgx.Tx
	commits, rollbacks int
}

func (t *stubTx) Commit(context.Context) error   { t.commits++; return nil }
func (t *stubTx) Rollback(context.Context) error { t.rollbacks++; return nil }

type stubPool struct {
	txBeginner
	begins []pgx.TxOptions
	txs    []*stubTx
}

func (p *stubPool) BeginTx(_ context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	p.begins = append(p.begins, opts)
	tx := &stubTx{}
	p.txs = append(p.txs, tx)
	return tx, nil
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "serialization failure", err: &pgconn.PgError{Code: "40001"}, want: true},
		{name: "deadlock", err: &pgconn.PgError{Code: "40P01"}, want: true},
		{name: "wrapped by repository", err: infra.WrapRepoErr("overlap query", &pgconn.PgError{Code: "40001"}), want: true},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: false},
		{name: "plain error", err: errs.New("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}

func TestShouldRetry_StopsAtMaxRetries(t *testing.T) {
	err := &pgconn.PgError{Code: "40001"}

	assert.True(t, shouldRetry(err, 0, 3))
	assert.True(t, shouldRetry(err, 2, 3))
	assert.False(t, shouldRetry(err, 3, 3))
}

func TestCalculateBackoff(t *testing.T) {
	base := 50 * time.Millisecond

	for attempt := 0; attempt < 4; attempt++ {
		got := calculateBackoff(attempt, base)
		floor := time.Duration(1<<attempt) * base

		assert.GreaterOrEqual(t, got, floor)
		assert.Less(t, got, floor+floor/5+time.Nanosecond)
	}
}

func TestWithinOnce_RetryableErrorGetsOneAttempt(t *testing.T) {
	pool := &stubPool{}
	u := &PostgresUoW{pool: pool}
	deadlock := errs.Wrap(infra.WrapRepoErr("insert reservation", &pgconn.PgError{Code: "40P01"}), "write")

	calls := 0
	err := u.WithinOnce(context.Background(), func(context.Context, shared.Tx) error {
		calls++
		return deadlock
	})

	require.ErrorIs(t, err, deadlock)
	assert.NotErrorIs(t, err, errMaxRetriesExceeded)
	assert.Equal(t, 1, calls)
	require.Len(t, pool.begins, 1)
	assert.Equal(t, pgx.ReadCommitted, pool.begins[0].IsoLevel)
	assert.Equal(t, 1, pool.txs[0].rollbacks)
	assert.Zero(t, pool.txs[0].commits)
}

func TestWithin_RetriesRetryableErrorUntilSuccess(t *testing.T) {
	pool := &stubPool{}
	u := &PostgresUoW{pool: pool}

	calls := 0
	err := u.Within(context.Background(), func(context.Context, shared.Tx) error {
		calls++
		if calls == 1 {
			return &pgconn.PgError{Code: "40001"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, pool.txs, 2)
	assert.Equal(t, 1, pool.txs[0].rollbacks)
	assert.Equal(t, 1, pool.txs[1].commits)
}
