// Package rules содержит чистые проверки интервала брони против активной
// политики. Никакого I/O и состояния - пакет переиспользуется слоем
// представления для предварительной валидации до отправки запроса.
//
// Правило округления единое для всех границ: разницы времени считаются
// в целых минутах с округлением вниз, включая горизонт в днях
// (maxDaysAhead сравнивается как maxDaysAhead*24*60 минут).
package rules

import (
	"time"

	"github.com/kmalkov/roombooking_service/internal/apperrors"
	"github.com/kmalkov/roombooking_service/internal/model"
)

const minutesPerDay = 24 * 60

// Validate прогоняет все чистые проверки в фиксированном порядке:
// временное окно -> длительность -> горизонт. Возвращает первую ошибку.
func Validate(cfg model.RuleConfig, startAt, endAt, now time.Time) error {
	if err := CheckWindow(cfg, startAt, endAt); err != nil {
		return err
	}
	if err := CheckDuration(cfg, startAt, endAt); err != nil {
		return err
	}
	return CheckHorizon(cfg, startAt, now)
}

// CheckWindow проверяет порядок границ, рабочие часы и выравнивание
// начала по сетке слотов. Все вычисления в UTC.
func CheckWindow(cfg model.RuleConfig, startAt, endAt time.Time) error {
	if !startAt.Before(endAt) {
		return apperrors.New(apperrors.KindInvalidTimeRange, "start must be before end")
	}

	start := startAt.UTC()
	end := endAt.UTC()

	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()
	endDate := end
	// Полночь в конце интервала считается концом суток, а не их началом.
	if endMin == 0 {
		endMin = minutesPerDay
		endDate = endDate.AddDate(0, 0, -1)
	}

	// Бронь целиком лежит внутри одних рабочих суток: сравнение часов
	// без сравнения дат пропустило бы интервал через закрытую ночь.
	sy, sm, sd := start.Date()
	ey, em, ed := endDate.Date()
	if sy != ey || sm != em || sd != ed {
		return apperrors.New(apperrors.KindOutsideOperatingHours, "booking must end on the same day it starts")
	}

	if startMin < cfg.OpenHour*60 || startMin > cfg.CloseHour*60 {
		return apperrors.New(apperrors.KindOutsideOperatingHours, "start is outside operating hours")
	}
	if endMin > cfg.CloseHour*60 {
		return apperrors.New(apperrors.KindOutsideOperatingHours, "end is outside operating hours")
	}

	if start.Second() != 0 || start.Nanosecond() != 0 || startMin%cfg.SlotIntervalMinutes != 0 {
		return apperrors.Newf(apperrors.KindInvalidTimeSlot,
			"start must be aligned to %d-minute slots", cfg.SlotIntervalMinutes)
	}

	return nil
}

// floorMinutes округляет длительность вниз до целых минут.
// Деление time.Duration усекает к нулю, что для отрицательных
// разниц округляет вверх.
func floorMinutes(d time.Duration) int {
	m := d / time.Minute
	if d%time.Minute < 0 {
		m--
	}
	return int(m)
}

// CheckDuration проверяет длительность в целых минутах.
// Границы включительны: ровно min или ровно max проходят.
func CheckDuration(cfg model.RuleConfig, startAt, endAt time.Time) error {
	minutes := floorMinutes(endAt.Sub(startAt))
	if minutes < cfg.MinDurationMinutes {
		return apperrors.Newf(apperrors.KindDurationTooShort,
			"booking must be at least %d minutes", cfg.MinDurationMinutes)
	}
	if minutes > cfg.MaxDurationMinutes {
		return apperrors.Newf(apperrors.KindDurationTooLong,
			"booking must be at most %d minutes", cfg.MaxDurationMinutes)
	}
	return nil
}

// CheckHorizon проверяет минимальное уведомление и максимальный горизонт.
func CheckHorizon(cfg model.RuleConfig, startAt, now time.Time) error {
	noticeMinutes := floorMinutes(startAt.Sub(now))
	if noticeMinutes < cfg.MinNoticeMinutes {
		return apperrors.Newf(apperrors.KindTooSoon,
			"booking requires at least %d minutes notice", cfg.MinNoticeMinutes)
	}
	if noticeMinutes > cfg.MaxDaysAhead*minutesPerDay {
		return apperrors.Newf(apperrors.KindTooFarAhead,
			"booking must start within %d days", cfg.MaxDaysAhead)
	}
	return nil
}
