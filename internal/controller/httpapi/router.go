package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// NewRouter собирает маршруты API
func NewRouter(api *API, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /bookings", api.handleCreateBooking)
	mux.HandleFunc("GET /bookings/{id}", api.handleGetBooking)
	mux.HandleFunc("DELETE /bookings/{id}", api.handleCancelBooking)

	mux.HandleFunc("GET /users/{id}/bookings", api.handleListUserBookings)
	mux.HandleFunc("POST /users", api.handleRegisterUser)

	mux.HandleFunc("GET /rooms", api.handleListRooms)
	mux.HandleFunc("GET /rooms/{id}/availability", api.handleRoomAvailability)

	mux.HandleFunc("GET /rule-config", api.handleGetRuleConfig)
	mux.HandleFunc("PATCH /rule-config", api.handlePatchRuleConfig)

	mux.HandleFunc("POST /admin/expire", api.handleExpire)

	return withLogging(logger, mux)
}
