package list_competitions

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-RangeBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RangeBooking/internal/api/middleware"
	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	listCompetitions "github.com/m04kA/SMC-RangeBooking/internal/usecase/list_competitions"
)

const (
	msgInvalidFrom   = "некорректный формат даты 'from', ожидается YYYY-MM-DD"
	msgInvalidTo     = "некорректный формат даты 'to', ожидается YYYY-MM-DD"
	msgInvalidStatus = "некорректный статус соревнования"
	msgInvalidRange  = "дата 'to' не может быть раньше 'from'"
)

type Handler struct {
	useCase ListCompetitionsUseCase
	logger  Logger
}

func NewHandler(useCase ListCompetitionsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/competitions
// Query params: search, from, to (YYYY-MM-DD), status (open|full|closed)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &listCompetitions.Request{
		Search: query.Get("search"),
		Actor:  middleware.ActorFromContext(r.Context()),
	}

	if v := query.Get("from"); v != "" {
		from, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			h.logger.Warn("GET /competitions - Invalid from: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		req.From = &from
	}

	if v := query.Get("to"); v != "" {
		to, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			h.logger.Warn("GET /competitions - Invalid to: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTo)
			return
		}
		req.To = &to
	}

	if v := query.Get("status"); v != "" {
		status, err := domain.ParseCompetitionStatus(v)
		if err != nil {
			h.logger.Warn("GET /competitions - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		req.Status = &status
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		if errors.Is(err, listCompetitions.ErrInvalidInput) {
			h.logger.Warn("GET /competitions - Invalid date range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		h.logger.Error("GET /competitions - Failed to list competitions: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /competitions - Listed %d competitions", len(result.Competitions))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
