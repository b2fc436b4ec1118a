package lock_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RangeBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RangeBooking/internal/api/middleware"
	"github.com/m04kA/SMC-RangeBooking/internal/service/holds"
)

const (
	msgInvalidCompetitionID = "некорректный ID соревнования"
	msgUnauthorized         = "требуется аутентификация"
	msgCompetitionNotFound  = "соревнование не найдено"
	msgCompetitionClosed    = "запись на соревнование закрыта"
	msgSlotNotFound         = "слот не найден"
	msgSlotTaken            = "слот уже занят"
	msgIneligible           = "нет допущенного класса для этого слота"
)

type Handler struct {
	holds  HoldsService
	logger Logger
}

func NewHandler(holds HoldsService, logger Logger) *Handler {
	return &Handler{
		holds:  holds,
		logger: logger,
	}
}

// Handle POST /api/v1/competitions/{competitionId}/slots/{slotId}/lock
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	competitionID, err := strconv.ParseInt(vars["competitionId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /competitions/{competitionId}/slots/{slotId}/lock - Invalid competition ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompetitionID)
		return
	}
	slotID := vars["slotId"]

	lock, err := h.holds.Lock(r.Context(), competitionID, slotID, middleware.ActorFromContext(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, holds.ErrUnauthenticated):
			handlers.RespondUnauthorized(w, msgUnauthorized)

		case errors.Is(err, holds.ErrCompetitionNotFound):
			h.logger.Warn("POST /competitions/%d/slots/%s/lock - Competition not found", competitionID, slotID)
			handlers.RespondNotFound(w, msgCompetitionNotFound)

		case errors.Is(err, holds.ErrCompetitionClosed):
			h.logger.Warn("POST /competitions/%d/slots/%s/lock - Competition closed", competitionID, slotID)
			handlers.RespondBadRequest(w, msgCompetitionClosed)

		case errors.Is(err, holds.ErrSlotNotFound):
			h.logger.Warn("POST /competitions/%d/slots/%s/lock - Slot not found", competitionID, slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, holds.ErrSlotTaken):
			h.logger.Warn("POST /competitions/%d/slots/%s/lock - Slot taken", competitionID, slotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, holds.ErrIneligible):
			h.logger.Warn("POST /competitions/%d/slots/%s/lock - Ineligible", competitionID, slotID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgIneligible)

		default:
			h.logger.Error("POST /competitions/%d/slots/%s/lock - Failed to lock slot: %v", competitionID, slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /competitions/%d/slots/%s/lock - Slot locked by actor=%s", competitionID, slotID, lock.ActorID)
	handlers.RespondJSON(w, http.StatusOK, FromSlotLock(competitionID, lock))
}
