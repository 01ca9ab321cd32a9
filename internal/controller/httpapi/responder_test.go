package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/kmalkov/roombooking_service/internal/apperrors"
)

func TestStatusForKindCoversTaxonomy(t *testing.T) {
	tests := []struct {
		kind   apperrors.Kind
		status int
	}{
		{apperrors.KindInvalidTimeRange, http.StatusUnprocessableEntity},
		{apperrors.KindOutsideOperatingHours, http.StatusUnprocessableEntity},
		{apperrors.KindInvalidTimeSlot, http.StatusUnprocessableEntity},
		{apperrors.KindDurationTooShort, http.StatusUnprocessableEntity},
		{apperrors.KindDurationTooLong, http.StatusUnprocessableEntity},
		{apperrors.KindTooSoon, http.StatusUnprocessableEntity},
		{apperrors.KindTooFarAhead, http.StatusUnprocessableEntity},
		{apperrors.KindPastBooking, http.StatusUnprocessableEntity},
		{apperrors.KindInvalidRuleConfig, http.StatusUnprocessableEntity},
		{apperrors.KindMaxActiveBookingsExceeded, http.StatusConflict},
		{apperrors.KindMaxConsecutiveExceeded, http.StatusConflict},
		{apperrors.KindCooldownActive, http.StatusConflict},
		{apperrors.KindRoomUnavailable, http.StatusConflict},
		{apperrors.KindMaintenanceConflict, http.StatusConflict},
		{apperrors.KindRoomMaintenance, http.StatusConflict},
		{apperrors.KindAlreadyCancelled, http.StatusConflict},
		{apperrors.KindRoomArchived, http.StatusGone},
		{apperrors.KindRoomNotFound, http.StatusNotFound},
		{apperrors.KindBookingNotFound, http.StatusNotFound},
		{apperrors.KindUserNotFound, http.StatusNotFound},
		{apperrors.KindForbidden, http.StatusForbidden},
		{apperrors.KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.status, statusForKind(tt.kind))
		})
	}
}

func TestWriteErrorExposesKindNotInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, zap.NewNop(), apperrors.New(apperrors.KindRoomUnavailable, "room is busy"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"kind":"ROOM_UNAVAILABLE","message":"room is busy"}`, rec.Body.String())
}

func TestWriteErrorHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, zap.NewNop(), assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}
