//go:build unit

package bootstrap_test

import (
	"testing"
	"time"

	"table-booking/cmd/bootstrap"
	"table-booking/internal/domain/reservation"
	"table-booking/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPolicy(t *testing.T) {
	t.Run("テスト設定からポリシーを組み立てる", func(t *testing.T) {
		policy, err := bootstrap.NewPolicy(config.NewTestConfig())
		require.NoError(t, err)

		assert.Equal(t, reservation.TableNumber(1), policy.Layout.MinTable())
		assert.Equal(t, reservation.TableNumber(5), policy.Layout.MaxTable())
		assert.Equal(t, reservation.Seats(4), policy.Layout.SeatsPerTable())
		assert.Equal(t, time.Hour, policy.Duration)
	})

	t.Run("未知のタイムゾーンはエラー", func(t *testing.T) {
		cfg := config.NewTestConfig()
		cfg.Restaurant.TimeZone = "Nowhere/Special"

		_, err := bootstrap.NewPolicy(cfg)
		assert.Error(t, err)
	})

	t.Run("予約時間が0ならエラー", func(t *testing.T) {
		cfg := config.NewTestConfig()
		cfg.Restaurant.ReservationDuration = 0

		_, err := bootstrap.NewPolicy(cfg)
		assert.Error(t, err)
	})
}
