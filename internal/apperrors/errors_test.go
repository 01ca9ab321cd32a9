package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := New(KindRoomUnavailable, "room is busy")
	assert.Equal(t, KindRoomUnavailable, KindOf(err))

	wrapped := fmt.Errorf("create booking: %w", err)
	assert.Equal(t, KindRoomUnavailable, KindOf(wrapped))

	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("sqlstate 40001")
	err := Wrap(KindRoomUnavailable, "room was booked concurrently", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "ROOM_UNAVAILABLE")
	assert.Contains(t, err.Error(), "sqlstate 40001")
}

func TestIsKind(t *testing.T) {
	err := Newf(KindCooldownActive, "wait until %s", "2025-10-01T10:00:00Z")

	assert.True(t, IsKind(err, KindCooldownActive))
	assert.False(t, IsKind(err, KindRoomUnavailable))
}
