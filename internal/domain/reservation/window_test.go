//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utc(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestBusinessHours_WindowAt(t *testing.T) {
	tests := []struct {
		name        string
		timezone    string
		opening     int
		closing     int
		instant     time.Time
		wantOpen    int
		wantClosing int
	}{
		{
			name:     "UTCのまま",
			timezone: "UTC", opening: 19, closing: 24,
			instant:  utc(2024, 1, 1, 20, 0),
			wantOpen: 19, wantClosing: 0,
		},
		{
			name:     "ローマ冬時間 (UTC+1)",
			timezone: "Europe/Rome", opening: 19, closing: 24,
			instant:  utc(2024, 1, 15, 19, 0),
			wantOpen: 18, wantClosing: 23,
		},
		{
			name:     "ローマ夏時間 (UTC+2)",
			timezone: "Europe/Rome", opening: 19, closing: 24,
			instant:  utc(2024, 7, 15, 19, 0),
			wantOpen: 17, wantClosing: 22,
		},
		{
			name:     "東京は UTC をまたぐ",
			timezone: "Asia/Tokyo", opening: 11, closing: 22,
			instant:  utc(2024, 3, 1, 5, 0),
			wantOpen: 2, wantClosing: 13,
		},
		{
			name:     "ニューヨークは閉店が翌日UTC",
			timezone: "America/New_York", opening: 17, closing: 23,
			instant:  utc(2024, 1, 10, 23, 0),
			wantOpen: 22, wantClosing: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours, err := reservation.NewBusinessHours(tt.timezone, tt.opening, tt.closing)
			require.NoError(t, err)

			window := hours.WindowAt(tt.instant)

			assert.Equal(t, tt.wantOpen, window.OpeningHourUTC())
			assert.Equal(t, tt.wantClosing, window.ClosingHourUTC())
		})
	}
}

func TestBusinessHours_WindowAt_FollowsDSTChange(t *testing.T) {
	hours, err := reservation.NewBusinessHours("Europe/Rome", 19, 24)
	require.NoError(t, err)

	// Rome switches to summer time on 2024-03-31.
	before := hours.WindowAt(utc(2024, 3, 30, 19, 0))
	after := hours.WindowAt(utc(2024, 3, 31, 19, 0))

	assert.Equal(t, 18, before.OpeningHourUTC())
	assert.Equal(t, 17, after.OpeningHourUTC())
}

func TestNewBusinessHours_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		opening  int
		closing  int
	}{
		{name: "不明なタイムゾーン", timezone: "Nowhere/Land", opening: 19, closing: 24},
		{name: "開店時刻が範囲外", timezone: "UTC", opening: 24, closing: 24},
		{name: "閉店時刻が0", timezone: "UTC", opening: 19, closing: 0},
		{name: "閉店時刻が25", timezone: "UTC", opening: 19, closing: 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reservation.NewBusinessHours(tt.timezone, tt.opening, tt.closing)
			require.ErrorIs(t, err, errs.ErrInvalidBusinessConfig)
		})
	}
}

func TestBusinessWindow_Contains(t *testing.T) {
	tests := []struct {
		name    string
		window  reservation.BusinessWindow
		instant time.Time
		want    bool
	}{
		{name: "開店時刻ちょうど", window: reservation.NewBusinessWindow(19, 0), instant: utc(2024, 1, 1, 19, 0), want: true},
		{name: "閉店直前", window: reservation.NewBusinessWindow(19, 0), instant: utc(2024, 1, 1, 23, 59), want: true},
		{name: "深夜0時は閉店", window: reservation.NewBusinessWindow(19, 0), instant: utc(2024, 1, 2, 0, 0), want: false},
		{name: "開店前", window: reservation.NewBusinessWindow(19, 0), instant: utc(2024, 1, 1, 18, 59), want: false},
		{name: "通常の範囲内", window: reservation.NewBusinessWindow(18, 23), instant: utc(2024, 1, 1, 22, 30), want: true},
		{name: "通常の範囲で閉店時刻", window: reservation.NewBusinessWindow(18, 23), instant: utc(2024, 1, 1, 23, 0), want: false},
		{name: "日付をまたぐ窓の深夜", window: reservation.NewBusinessWindow(22, 4), instant: utc(2024, 1, 2, 3, 0), want: true},
		{name: "日付をまたぐ窓の昼", window: reservation.NewBusinessWindow(22, 4), instant: utc(2024, 1, 2, 12, 0), want: false},
		{name: "終日営業", window: reservation.NewBusinessWindow(0, 24), instant: utc(2024, 1, 2, 7, 0), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.window.Contains(tt.instant))
		})
	}
}

func mustHours(t *testing.T, tz string, opening, closing int) reservation.BusinessHours {
	t.Helper()
	h, err := reservation.NewBusinessHours(tz, opening, closing)
	require.NoError(t, err)
	return h
}

func TestBusinessHours_NextOpeningAfter(t *testing.T) {
	tests := []struct {
		name    string
		hours   reservation.BusinessHours
		instant time.Time
		want    time.Time
	}{
		{name: "深夜0時半は当日19時", hours: mustHours(t, "UTC", 19, 24), instant: utc(2024, 1, 2, 0, 30), want: utc(2024, 1, 2, 19, 0)},
		{name: "開店前は同日", hours: mustHours(t, "UTC", 19, 24), instant: utc(2024, 1, 2, 10, 0), want: utc(2024, 1, 2, 19, 0)},
		{name: "開店時刻ちょうどは翌日", hours: mustHours(t, "UTC", 19, 24), instant: utc(2024, 1, 2, 19, 0), want: utc(2024, 1, 3, 19, 0)},
		{name: "営業中は翌日", hours: mustHours(t, "UTC", 19, 24), instant: utc(2024, 1, 2, 21, 0), want: utc(2024, 1, 3, 19, 0)},
		// 2026-10-25 CEST→CET: 19:00 local is 18:00Z on the new date, not 17:00Z.
		{name: "夏時間終了の夜を越える", hours: mustHours(t, "Europe/Rome", 19, 24), instant: utc(2026, 10, 24, 22, 30), want: utc(2026, 10, 25, 18, 0)},
		// 2026-03-29 CET→CEST: 19:00 local is 17:00Z on the new date.
		{name: "夏時間開始の夜を越える", hours: mustHours(t, "Europe/Rome", 19, 24), instant: utc(2026, 3, 28, 23, 30), want: utc(2026, 3, 29, 17, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.hours.NextOpeningAfter(tt.instant)
			assert.Equal(t, tt.want, got)
			assert.True(t, tt.hours.Contains(got), "next opening must itself be bookable")
		})
	}
}

func TestNormalizeUTC(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		errIs error
	}{
		{name: "ミリ秒付きZ", input: "2024-01-01T20:00:00.000Z", want: utc(2024, 1, 1, 20, 0)},
		{name: "秒までのZ", input: "2024-01-01T20:00:00Z", want: utc(2024, 1, 1, 20, 0)},
		{name: "オフセット付きはNG", input: "2024-01-01T21:00:00+01:00", errIs: errs.ErrTimeNotUTC},
		{name: "タイムゾーンなしはNG", input: "2024-01-01T20:00:00", errIs: errs.ErrInvalidTimeFormat},
		{name: "日付のみはNG", input: "2024-01-01", errIs: errs.ErrInvalidTimeFormat},
		{name: "空文字はNG", input: "", errIs: errs.ErrInvalidTimeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reservation.NormalizeUTC(tt.input)

			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestFormatUTC(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01T21:00:00.000Z", reservation.FormatUTC(utc(2024, 1, 1, 21, 0)))
	assert.Equal(t, "2024-01-01T20:00:00.000Z", reservation.FormatUTC(time.Date(2024, 1, 1, 21, 0, 0, 0, rome)))
}
