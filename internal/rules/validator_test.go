package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmalkov/roombooking_service/internal/apperrors"
	"github.com/kmalkov/roombooking_service/internal/model"
)

func testConfig() model.RuleConfig {
	return model.RuleConfig{
		OpenHour:            8,
		CloseHour:           22,
		SlotIntervalMinutes: 15,
		MinDurationMinutes:  30,
		MaxDurationMinutes:  120,
		MaxActiveBookings:   3,
		MinNoticeMinutes:    30,
		MaxDaysAhead:        14,
	}
}

func at(day int, hour, minute int) time.Time {
	return time.Date(2025, time.October, day, hour, minute, 0, 0, time.UTC)
}

func TestValidate(t *testing.T) {
	cfg := testConfig()
	now := at(1, 8, 45)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		kind  apperrors.Kind
	}{
		{
			name:  "accepted with two hours notice one day ahead",
			start: at(2, 9, 0),
			end:   at(2, 9, 30),
		},
		{
			name:  "start equals end",
			start: at(2, 9, 0),
			end:   at(2, 9, 0),
			kind:  apperrors.KindInvalidTimeRange,
		},
		{
			name:  "start after end",
			start: at(2, 10, 0),
			end:   at(2, 9, 0),
			kind:  apperrors.KindInvalidTimeRange,
		},
		{
			name:  "start before opening",
			start: at(2, 7, 45),
			end:   at(2, 8, 30),
			kind:  apperrors.KindOutsideOperatingHours,
		},
		{
			name:  "end after closing",
			start: at(2, 21, 30),
			end:   at(2, 22, 15),
			kind:  apperrors.KindOutsideOperatingHours,
		},
		{
			name:  "end exactly at closing is allowed",
			start: at(2, 21, 0),
			end:   at(2, 22, 0),
		},
		{
			name:  "start exactly at opening is allowed",
			start: at(2, 8, 0),
			end:   at(2, 9, 0),
		},
		{
			name:  "misaligned start",
			start: at(2, 9, 10),
			end:   at(2, 9, 40),
			kind:  apperrors.KindInvalidTimeSlot,
		},
		{
			name:  "duration below minimum",
			start: at(2, 9, 0),
			end:   at(2, 9, 15),
			kind:  apperrors.KindDurationTooShort,
		},
		{
			name:  "duration exactly minimum is allowed",
			start: at(2, 9, 0),
			end:   at(2, 9, 30),
		},
		{
			name:  "duration exactly maximum is allowed",
			start: at(2, 9, 0),
			end:   at(2, 11, 0),
		},
		{
			name:  "duration above maximum",
			start: at(2, 9, 0),
			end:   at(2, 11, 15),
			kind:  apperrors.KindDurationTooLong,
		},
		{
			name:  "too little notice",
			start: at(1, 9, 0),
			end:   at(1, 9, 30),
			kind:  apperrors.KindTooSoon,
		},
		{
			name:  "too far ahead",
			start: at(16, 9, 0),
			end:   at(16, 9, 30),
			kind:  apperrors.KindTooFarAhead,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(cfg, tt.start, tt.end, now)
			if tt.kind == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperrors.KindOf(err))
		})
	}
}

func TestCheckWindowEveryMisalignedOffset(t *testing.T) {
	cfg := testConfig()

	for offset := 1; offset < cfg.SlotIntervalMinutes; offset++ {
		start := at(2, 9, offset)
		err := CheckWindow(cfg, start, start.Add(30*time.Minute))
		require.Error(t, err, "offset %d", offset)
		assert.Equal(t, apperrors.KindInvalidTimeSlot, apperrors.KindOf(err), "offset %d", offset)
	}
}

func TestCheckWindowMidnightClose(t *testing.T) {
	cfg := testConfig()
	cfg.CloseHour = 24

	// Конец ровно в полночь укладывается в [open, close) при close = 24.
	err := CheckWindow(cfg, at(2, 23, 0), at(3, 0, 0))
	assert.NoError(t, err)

	// Но позже полуночи бронь уже перетекает в следующие сутки.
	err = CheckWindow(cfg, at(2, 23, 0), at(3, 1, 0))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindOutsideOperatingHours, apperrors.KindOf(err))
}

func TestCheckWindowRejectsOvernightInterval(t *testing.T) {
	cfg := testConfig()
	// Щедрый лимит длительности не должен открывать закрытую ночь.
	cfg.MaxDurationMinutes = 840

	// 21:00 -> 11:00 следующего дня: оба времени суток внутри [8, 22],
	// но интервал занимает комнату через закрытые часы.
	err := CheckWindow(cfg, at(2, 21, 0), at(3, 11, 0))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindOutsideOperatingHours, apperrors.KindOf(err))

	// Конвейер целиком тоже отказывает на первом шаге.
	err = Validate(cfg, at(2, 21, 0), at(3, 11, 0), at(1, 8, 45))
	assert.Equal(t, apperrors.KindOutsideOperatingHours, apperrors.KindOf(err))

	// Конец на сутки позже и дальше отклоняется так же.
	err = CheckWindow(cfg, at(2, 9, 0), at(5, 10, 0))
	assert.Equal(t, apperrors.KindOutsideOperatingHours, apperrors.KindOf(err))
}

func TestCheckWindowRejectsSubMinuteStart(t *testing.T) {
	cfg := testConfig()

	start := time.Date(2025, time.October, 2, 9, 0, 30, 0, time.UTC)
	err := CheckWindow(cfg, start, start.Add(30*time.Minute))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidTimeSlot, apperrors.KindOf(err))

	start = time.Date(2025, time.October, 2, 9, 0, 0, 1, time.UTC)
	err = CheckWindow(cfg, start, start.Add(30*time.Minute))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidTimeSlot, apperrors.KindOf(err))
}

func TestCheckHorizonBoundaries(t *testing.T) {
	cfg := testConfig()
	now := at(1, 8, 0)

	// Уведомление ровно minNotice минут проходит.
	assert.NoError(t, CheckHorizon(cfg, now.Add(30*time.Minute), now))

	// Старт ровно на границе горизонта проходит.
	assert.NoError(t, CheckHorizon(cfg, now.AddDate(0, 0, 14), now))

	err := CheckHorizon(cfg, now.AddDate(0, 0, 14).Add(time.Minute), now)
	assert.Equal(t, apperrors.KindTooFarAhead, apperrors.KindOf(err))
}

func TestCheckHorizonFloorsNegativeNotice(t *testing.T) {
	cfg := testConfig()
	cfg.MinNoticeMinutes = 0
	now := at(1, 8, 0)

	// Старт на секунды в прошлом - это минус одна целая минута
	// уведомления, а не ноль: усечение к нулю пропустило бы его.
	err := CheckHorizon(cfg, now.Add(-30*time.Second), now)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindTooSoon, apperrors.KindOf(err))

	// Старт ровно сейчас при нулевом уведомлении проходит.
	assert.NoError(t, CheckHorizon(cfg, now, now))
}
