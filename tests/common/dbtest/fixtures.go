//go:build unit || e2e

// Package dbtest seeds and inspects the booking tables directly, bypassing the
// HTTP surface so e2e scenarios can arrange the ledger precisely.
package dbtest

import (
	"context"
	"strings"
	"testing"
	"time"

	"table-booking/internal/infra/db"

	"github.com/stretchr/testify/require"
)

// ledgerTables is ordered children first.
var ledgerTables = []string{"reservations", "users"}

func CreateTestUser(t *testing.T, conn db.DBTX, name, email string) int64 {
	t.Helper()

	var userID int64
	err := conn.QueryRow(context.Background(),
		`INSERT INTO users (name, email) VALUES ($1, $2)
		 ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`,
		name, email).Scan(&userID)
	require.NoError(t, err, "insert user %s", email)
	return userID
}

// CreateTestReservation writes a row without any capacity check, so tests can
// build over-full or edge-aligned ledgers.
func CreateTestReservation(t *testing.T, conn db.DBTX, userID int64, table, seats int, at time.Time) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(context.Background(),
		`INSERT INTO reservations (user_id, table_number, number_of_seats, reservation_time)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		userID, table, seats, at.UTC()).Scan(&id)
	require.NoError(t, err, "insert reservation on table %d", table)
	return id
}

func CountReservations(t *testing.T, conn db.DBTX, table int) int {
	t.Helper()

	var n int
	err := conn.QueryRow(context.Background(),
		"SELECT count(*) FROM reservations WHERE table_number = $1", table).Scan(&n)
	require.NoError(t, err)
	return n
}

// ResetDB empties the ledger and restarts id sequences so each case sees ids from 1.
func ResetDB(ctx context.Context, conn db.DBTX) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := conn.Exec(ctx, "TRUNCATE "+strings.Join(ledgerTables, ", ")+" RESTART IDENTITY CASCADE")
	return err
}
