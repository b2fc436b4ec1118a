package release_slot

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
	msgSlotNotFound         = "слот не найден"
	msgNotLockOwner         = "слот удерживается другим участником"
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

// Handle DELETE /api/v1/competitions/{competitionId}/slots/{slotId}/lock
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	competitionID, err := strconv.ParseInt(vars["competitionId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /competitions/{competitionId}/slots/{slotId}/lock - Invalid competition ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompetitionID)
		return
	}
	slotID := vars["slotId"]

	err = h.holds.Release(r.Context(), competitionID, slotID, middleware.ActorFromContext(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, holds.ErrUnauthenticated):
			handlers.RespondUnauthorized(w, msgUnauthorized)

		case errors.Is(err, holds.ErrCompetitionNotFound):
			h.logger.Warn("DELETE /competitions/%d/slots/%s/lock - Competition not found", competitionID, slotID)
			handlers.RespondNotFound(w, msgCompetitionNotFound)

		case errors.Is(err, holds.ErrSlotNotFound):
			h.logger.Warn("DELETE /competitions/%d/slots/%s/lock - Slot not found", competitionID, slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, holds.ErrSlotTaken):
			h.logger.Warn("DELETE /competitions/%d/slots/%s/lock - Lock held by another actor", competitionID, slotID)
			handlers.RespondError(w, http.StatusConflict, msgNotLockOwner)

		default:
			h.logger.Error("DELETE /competitions/%d/slots/%s/lock - Failed to release lock: %v", competitionID, slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /competitions/%d/slots/%s/lock - Lock released", competitionID, slotID)
	w.WriteHeader(http.StatusNoContent)
}
