package apperrors

import (
	"errors"
	"fmt"
)

// Kind — закрытый набор видов доменных ошибок. Слой представления выбирает
// ответ по виду, без разбора текста сообщения.
type Kind string

const (
	KindInvalidTimeRange          Kind = "INVALID_TIME_RANGE"
	KindOutsideOperatingHours     Kind = "OUTSIDE_OPERATING_HOURS"
	KindInvalidTimeSlot           Kind = "INVALID_TIME_SLOT"
	KindDurationTooShort          Kind = "DURATION_TOO_SHORT"
	KindDurationTooLong           Kind = "DURATION_TOO_LONG"
	KindTooSoon                   Kind = "TOO_SOON"
	KindTooFarAhead               Kind = "TOO_FAR_AHEAD"
	KindMaxActiveBookingsExceeded Kind = "MAX_ACTIVE_BOOKINGS_EXCEEDED"
	KindMaxConsecutiveExceeded    Kind = "MAX_CONSECUTIVE_EXCEEDED"
	KindCooldownActive            Kind = "COOLDOWN_ACTIVE"
	KindRoomNotFound              Kind = "ROOM_NOT_FOUND"
	KindRoomArchived              Kind = "ROOM_ARCHIVED"
	KindRoomMaintenance           Kind = "ROOM_MAINTENANCE"
	KindRoomUnavailable           Kind = "ROOM_UNAVAILABLE"
	KindMaintenanceConflict       Kind = "MAINTENANCE_CONFLICT"
	KindBookingNotFound           Kind = "BOOKING_NOT_FOUND"
	KindForbidden                 Kind = "FORBIDDEN"
	KindAlreadyCancelled          Kind = "ALREADY_CANCELLED"
	KindPastBooking               Kind = "PAST_BOOKING"
	KindUserNotFound              Kind = "USER_NOT_FOUND"
	KindInvalidRuleConfig         Kind = "INVALID_RULE_CONFIG"

	// KindInternal — неожиданная ошибка хранилища или инфраструктуры.
	KindInternal Kind = "INTERNAL"
)

// Error — доменная ошибка с видом и человекочитаемым сообщением.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

// New создаёт доменную ошибку заданного вида.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf создаёт доменную ошибку с форматированным сообщением.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap создаёт доменную ошибку поверх исходной причины.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// Error реализует интерфейс error.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap возвращает причину, если она есть.
func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf возвращает вид доменной ошибки в цепочке err.
// Для любой другой ошибки возвращает KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind проверяет, что ошибка имеет заданный вид.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
