package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kmalkov/roombooking_service/internal/apperrors"
)

type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// statusForKind — закрытое отображение вида ошибки в HTTP-статус.
// Никакого разбора текста сообщений.
func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindInvalidTimeRange,
		apperrors.KindOutsideOperatingHours,
		apperrors.KindInvalidTimeSlot,
		apperrors.KindDurationTooShort,
		apperrors.KindDurationTooLong,
		apperrors.KindTooSoon,
		apperrors.KindTooFarAhead,
		apperrors.KindPastBooking,
		apperrors.KindInvalidRuleConfig:
		return http.StatusUnprocessableEntity
	case apperrors.KindMaxActiveBookingsExceeded,
		apperrors.KindMaxConsecutiveExceeded,
		apperrors.KindCooldownActive,
		apperrors.KindRoomUnavailable,
		apperrors.KindMaintenanceConflict,
		apperrors.KindRoomMaintenance,
		apperrors.KindAlreadyCancelled:
		return http.StatusConflict
	case apperrors.KindRoomArchived:
		return http.StatusGone
	case apperrors.KindRoomNotFound,
		apperrors.KindBookingNotFound,
		apperrors.KindUserNotFound:
		return http.StatusNotFound
	case apperrors.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError отвечает по виду доменной ошибки. Неожиданные ошибки
// логируются и наружу уходят без деталей.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	kind := apperrors.KindOf(err)
	status := statusForKind(kind)

	if status == http.StatusInternalServerError {
		logger.Error("Internal error", zap.Error(err))
		writeJSON(w, status, errorResponse{Kind: string(apperrors.KindInternal), Message: "internal error"})
		return
	}

	message := ""
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	writeJSON(w, status, errorResponse{Kind: string(kind), Message: message})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Kind: "BAD_REQUEST", Message: message})
}
