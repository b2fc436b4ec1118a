package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RangeBooking/internal/service/availability"
	"github.com/m04kA/SMC-RangeBooking/internal/service/competitions"
)

// UseCase use case для получения слотов соревнования с доступностью для участника
type UseCase struct {
	registry CompetitionRegistry
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(registry CompetitionRegistry, logger Logger) *UseCase {
	return &UseCase{
		registry: registry,
		logger:   logger,
	}
}

// Execute выполняет use case получения слотов.
// Представление пересчитывается на каждый запрос.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	actorID := "anonymous"
	if req.Actor.IsAuthenticated() {
		actorID = req.Actor.ID
	}
	uc.logger.Info("GetAvailableSlots: actor=%s, competition=%d", actorID, req.CompetitionID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем соревнование
	entry, err := uc.registry.Get(req.CompetitionID)
	if err != nil {
		if errors.Is(err, competitions.ErrCompetitionNotFound) {
			uc.logger.Warn("GetAvailableSlots: competition id=%d not found", req.CompetitionID)
			return nil, ErrCompetitionNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get competition id=%d: %v", req.CompetitionID, err)
		return nil, fmt.Errorf("%w: failed to get competition: %v", ErrInternal, err)
	}

	// 3. Снимок состояния слотов, истекшие блокировки снимаются при чтении
	board := entry.Board
	snapshot := board.Snapshot(ctx)

	// 4. Строим представление для участника
	view := availability.Build(board.Targets(), board.Dates(), snapshot, req.Actor)

	uc.logger.Info("GetAvailableSlots: competition id=%d, %d/%d slots available to actor=%s",
		req.CompetitionID, view.UserAvailable, view.TotalSlots, actorID)

	return &Response{
		Competition:   entry.Competition,
		Status:        entry.Status,
		Targets:       toTargets(view.ByTarget, req.Actor),
		Relays:        toRelays(view.ByTime, req.Actor),
		UserAvailable: view.UserAvailable,
		TotalSlots:    view.TotalSlots,
		Level:         view.Level,
	}, nil
}
