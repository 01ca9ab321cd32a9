package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kmalkov/roombooking_service/internal/apperrors"
	"github.com/kmalkov/roombooking_service/internal/model"
	"github.com/kmalkov/roombooking_service/internal/service"
)

// API — HTTP-слой над сервисами движка.
type API struct {
	bookings *service.BookingService
	rooms    *service.RoomService
	config   *service.RuleConfigService
	users    *service.UserService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewAPI(
	bookings *service.BookingService,
	rooms *service.RoomService,
	config *service.RuleConfigService,
	users *service.UserService,
	logger *zap.Logger,
) *API {
	return &API{
		bookings: bookings,
		rooms:    rooms,
		config:   config,
		users:    users,
		validate: validator.New(),
		logger:   logger,
	}
}

// caller получает вызывающего из заголовка и зеркала пользователей
func (a *API) caller(r *http.Request) (*model.User, error) {
	id, ok := callerID(r)
	if !ok {
		return nil, apperrors.New(apperrors.KindForbidden, "missing or malformed "+callerHeader+" header")
	}
	return a.users.Get(r.Context(), id)
}

// requireAdmin получает вызывающего и проверяет административные права
func (a *API) requireAdmin(r *http.Request) (*model.User, error) {
	user, err := a.caller(r)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin {
		return nil, apperrors.New(apperrors.KindForbidden, "administrator privileges required")
	}
	return user, nil
}

func (a *API) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	user, err := a.caller(r)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		writeBadRequest(w, "room_id must be a UUID")
		return
	}

	booking, err := a.bookings.CreateBooking(r.Context(), user.ID, roomID, req.StartAt, req.EndAt)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, toBookingResponse(booking))
}

func (a *API) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "booking id must be a UUID")
		return
	}

	booking, err := a.bookings.GetBooking(r.Context(), id)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

func (a *API) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	user, err := a.caller(r)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "booking id must be a UUID")
		return
	}

	booking, err := a.bookings.CancelBooking(r.Context(), id, user.ID, user.IsAdmin)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

func (a *API) handleListUserBookings(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "user id must be a UUID")
		return
	}

	bookings, err := a.bookings.ListUserBookings(r.Context(), userID)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookingResponses(bookings))
}

func (a *API) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	if _, err := a.requireAdmin(r); err != nil {
		writeError(w, a.logger, err)
		return
	}

	var req registerUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		writeBadRequest(w, "id must be a UUID")
		return
	}

	user, err := a.users.Register(r.Context(), id, req.Name, req.IsAdmin)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (a *API) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := a.rooms.ListRooms(r.Context())
	if err != nil {
		writeError(w, a.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, rooms)
}

func (a *API) handleRoomAvailability(w http.ResponseWriter, r *http.Request) {
	roomID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "room id must be a UUID")
		return
	}

	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		writeBadRequest(w, "start must be RFC3339")
		return
	}
	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
	if err != nil {
		writeBadRequest(w, "end must be RFC3339")
		return
	}

	if err := a.rooms.CheckAvailability(r.Context(), roomID, start, end); err != nil {
		kind := apperrors.KindOf(err)
		if kind == apperrors.KindInternal {
			writeError(w, a.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, availabilityResponse{Available: false, Reason: string(kind)})
		return
	}

	writeJSON(w, http.StatusOK, availabilityResponse{Available: true})
}

func (a *API) handleGetRuleConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := a.config.Get(r.Context())
	if err != nil {
		writeError(w, a.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

func (a *API) handlePatchRuleConfig(w http.ResponseWriter, r *http.Request) {
	admin, err := a.requireAdmin(r)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}

	var patch model.RuleConfigPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}

	cfg, err := a.config.Update(r.Context(), patch, admin.ID)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

func (a *API) handleExpire(w http.ResponseWriter, r *http.Request) {
	if _, err := a.requireAdmin(r); err != nil {
		writeError(w, a.logger, err)
		return
	}

	count, err := a.bookings.ExpireElapsed(r.Context())
	if err != nil {
		writeError(w, a.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, expireResponse{Expired: count})
}
