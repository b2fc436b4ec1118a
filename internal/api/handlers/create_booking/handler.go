package create_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RangeBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RangeBooking/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-RangeBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidCompetitionID = "некорректный ID соревнования"
	msgInvalidInput         = "некорректные данные бронирования"
	msgUnauthorized         = "требуется аутентификация"
	msgCompetitionNotFound  = "соревнование не найдено"
	msgCompetitionClosed    = "запись на соревнование закрыта"
	msgSlotNotFound         = "слот не найден"
	msgSlotTaken            = "слот уже занят"
	msgIneligible           = "класс стрелка не допущен на выбранный слот"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/competitions/{competitionId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	competitionID, err := strconv.ParseInt(vars["competitionId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /competitions/{competitionId}/bookings - Invalid competition ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompetitionID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /competitions/%d/bookings - Invalid request body: %v", competitionID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := middleware.ActorFromContext(r.Context())

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(competitionID, actor))
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrUnauthenticated):
			h.logger.Warn("POST /competitions/%d/bookings - Unauthenticated", competitionID)
			handlers.RespondUnauthorized(w, msgUnauthorized)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /competitions/%d/bookings - Invalid input: %v", competitionID, err)
			h.reject(w, http.StatusBadRequest, msgInvalidInput, err)

		case errors.Is(err, createBooking.ErrCompetitionNotFound):
			h.logger.Warn("POST /competitions/%d/bookings - Competition not found", competitionID)
			handlers.RespondNotFound(w, msgCompetitionNotFound)

		case errors.Is(err, createBooking.ErrCompetitionClosed):
			h.logger.Warn("POST /competitions/%d/bookings - Competition closed", competitionID)
			handlers.RespondBadRequest(w, msgCompetitionClosed)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /competitions/%d/bookings - Slot not found: %v", competitionID, err)
			h.reject(w, http.StatusNotFound, msgSlotNotFound, err)

		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /competitions/%d/bookings - Slot taken: actor=%s", competitionID, actor.ID)
			h.reject(w, http.StatusConflict, msgSlotTaken, err)

		case errors.Is(err, createBooking.ErrIneligible):
			h.logger.Warn("POST /competitions/%d/bookings - Ineligible: actor=%s, class=%s", competitionID, actor.ID, req.BookerClass)
			h.reject(w, http.StatusUnprocessableEntity, msgIneligible, err)

		default:
			h.logger.Error("POST /competitions/%d/bookings - Failed to create booking: %v", competitionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /competitions/%d/bookings - Booked %d slots: actor=%s",
		competitionID, len(result.Slots), actor.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) reject(w http.ResponseWriter, status int, message string, err error) {
	handlers.RespondJSON(w, status, newRejectedResponse(status, message, createBooking.FailedSlots(err)))
}
