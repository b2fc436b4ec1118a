package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RangeBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RangeBooking/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/SMC-RangeBooking/internal/usecase/get_available_slots"
)

const (
	msgInvalidCompetitionID = "некорректный ID соревнования"
	msgCompetitionNotFound  = "соревнование не найдено"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/competitions/{competitionId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	competitionID, err := strconv.ParseInt(vars["competitionId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /competitions/{competitionId}/slots - Invalid competition ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompetitionID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		CompetitionID: competitionID,
		Actor:         middleware.ActorFromContext(r.Context()),
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrCompetitionNotFound):
			h.logger.Warn("GET /competitions/%d/slots - Competition not found", competitionID)
			handlers.RespondNotFound(w, msgCompetitionNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /competitions/%d/slots - Invalid input: %v", competitionID, err)
			handlers.RespondBadRequest(w, msgInvalidCompetitionID)

		default:
			h.logger.Error("GET /competitions/%d/slots - Failed to get slots: %v", competitionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /competitions/%d/slots - Slots retrieved: %d of %d available",
		competitionID, result.UserAvailable, result.TotalSlots)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
