package list_competitions

import (
	"context"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	"github.com/m04kA/SMC-RangeBooking/internal/service/availability"
)

// UseCase use case для получения списка соревнований
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

// Execute выполняет use case получения списка соревнований с доступностью для участника
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ListCompetitions: search=%q", req.Search)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ListCompetitions: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем соревнования по фильтру
	entries := uc.registry.List(domain.CompetitionFilter{
		Search: req.Search,
		From:   req.From,
		To:     req.To,
		Status: req.Status,
	})

	// 3. Считаем доступность для каждой карточки
	result := make([]Competition, 0, len(entries))
	for _, e := range entries {
		summary := availability.Summarize(e.Board.Snapshot(ctx), req.Actor)
		result = append(result, Competition{
			Competition:   e.Competition,
			Status:        e.Status,
			UserAvailable: summary.UserAvailable,
			TotalSlots:    summary.TotalSlots,
			Level:         summary.Level,
		})
	}

	uc.logger.Info("ListCompetitions: found %d competitions", len(result))

	return &Response{Competitions: result}, nil
}
