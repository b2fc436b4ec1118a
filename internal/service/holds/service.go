package holds

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	"github.com/m04kA/SMC-RangeBooking/internal/service/booking"
	"github.com/m04kA/SMC-RangeBooking/internal/service/competitions"
)

// Service сервис удержания слотов на время оформления брони
type Service struct {
	registry CompetitionRegistry
	logger   Logger
}

// NewService создает новый экземпляр сервиса удержаний
func NewService(registry CompetitionRegistry, logger Logger) *Service {
	return &Service{
		registry: registry,
		logger:   logger,
	}
}

// Lock удерживает слот за участником. Повторный вызов продлевает удержание.
func (s *Service) Lock(ctx context.Context, competitionID int64, slotID string, actor *domain.Actor) (*booking.SlotLock, error) {
	if !actor.IsAuthenticated() {
		s.logger.Warn("Lock: anonymous actor, competition=%d slot=%s", competitionID, slotID)
		return nil, ErrUnauthenticated
	}

	s.logger.Info("Lock: actor=%s competition=%d slot=%s", actor.ID, competitionID, slotID)

	board, err := s.openBoard(competitionID)
	if err != nil {
		return nil, err
	}

	lock, err := board.Lock(ctx, slotID, actor)
	if err != nil {
		s.logger.Warn("Lock: failed for actor=%s slot=%s: %v", actor.ID, slotID, err)
		return nil, translate(err)
	}

	s.logger.Info("Lock: slot=%s held by actor=%s until %s", slotID, actor.ID, lock.ExpiresAt.Format("15:04:05"))
	return lock, nil
}

// Release снимает удержание участника. Уже свободный слот не ошибка.
func (s *Service) Release(ctx context.Context, competitionID int64, slotID string, actor *domain.Actor) error {
	if !actor.IsAuthenticated() {
		s.logger.Warn("Release: anonymous actor, competition=%d slot=%s", competitionID, slotID)
		return ErrUnauthenticated
	}

	s.logger.Info("Release: actor=%s competition=%d slot=%s", actor.ID, competitionID, slotID)

	entry, err := s.registry.Get(competitionID)
	if err != nil {
		return translateRegistry(err)
	}

	if err := entry.Board.ReleaseLock(ctx, slotID, actor.ID); err != nil {
		s.logger.Warn("Release: failed for actor=%s slot=%s: %v", actor.ID, slotID, err)
		return translate(err)
	}

	return nil
}

func (s *Service) openBoard(competitionID int64) (*booking.Board, error) {
	entry, err := s.registry.Get(competitionID)
	if err != nil {
		if errors.Is(err, competitions.ErrCompetitionNotFound) {
			s.logger.Warn("Lock: competition id=%d not found", competitionID)
		} else {
			s.logger.Error("Lock: failed to get competition id=%d: %v", competitionID, err)
		}
		return nil, translateRegistry(err)
	}

	if entry.Status == domain.CompetitionClosed {
		s.logger.Warn("Lock: competition id=%d is closed", competitionID)
		return nil, ErrCompetitionClosed
	}

	return entry.Board, nil
}

func translateRegistry(err error) error {
	if errors.Is(err, competitions.ErrCompetitionNotFound) {
		return ErrCompetitionNotFound
	}
	return fmt.Errorf("%w: failed to get competition: %v", ErrInternal, err)
}

func translate(err error) error {
	switch {
	case errors.Is(err, booking.ErrNotFound):
		return ErrSlotNotFound
	case errors.Is(err, booking.ErrConflict):
		return ErrSlotTaken
	case errors.Is(err, booking.ErrIneligible):
		return ErrIneligible
	case errors.Is(err, booking.ErrUnauthenticated):
		return ErrUnauthenticated
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
