package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	"github.com/m04kA/SMC-RangeBooking/internal/service/booking"
	"github.com/m04kA/SMC-RangeBooking/internal/service/competitions"
)

// Результаты попыток бронирования для метрик
const (
	resultSuccess    = "success"
	resultConflict   = "conflict"
	resultIneligible = "ineligible"
	resultNotFound   = "not_found"
	resultInvalid    = "invalid"
	resultError      = "error"
)

// UseCase use case для бронирования слотов
type UseCase struct {
	registry CompetitionRegistry
	observer AttemptObserver
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(registry CompetitionRegistry, observer AttemptObserver, logger Logger) *UseCase {
	if observer == nil {
		observer = nopObserver{}
	}
	return &UseCase{
		registry: registry,
		observer: observer,
		logger:   logger,
	}
}

// Execute выполняет use case бронирования.
// Несколько слотов бронируются по принципу "все или ничего".
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Проверяем, что участник аутентифицирован
	if !req.Actor.IsAuthenticated() {
		uc.logger.Warn("CreateBooking: anonymous actor, competition=%d", req.CompetitionID)
		uc.observer.ObserveBookingAttempt(resultInvalid)
		return nil, ErrUnauthenticated
	}

	uc.logger.Info("CreateBooking: actor=%s, competition=%d, slots=%d", req.Actor.ID, req.CompetitionID, len(req.Slots))

	// 2. Валидация входных данных
	applyDefaults(req)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.observer.ObserveBookingAttempt(resultInvalid)
		return nil, err
	}

	// 3. Получаем соревнование
	entry, err := uc.registry.Get(req.CompetitionID)
	if err != nil {
		if errors.Is(err, competitions.ErrCompetitionNotFound) {
			uc.logger.Warn("CreateBooking: competition id=%d not found", req.CompetitionID)
			uc.observer.ObserveBookingAttempt(resultNotFound)
			return nil, ErrCompetitionNotFound
		}
		uc.logger.Error("CreateBooking: failed to get competition id=%d: %v", req.CompetitionID, err)
		uc.observer.ObserveBookingAttempt(resultError)
		return nil, fmt.Errorf("%w: failed to get competition: %v", ErrInternal, err)
	}

	// 4. Закрытое соревнование не принимает брони
	if entry.Status == domain.CompetitionClosed {
		uc.logger.Warn("CreateBooking: competition id=%d is closed", req.CompetitionID)
		uc.observer.ObserveBookingAttempt(resultInvalid)
		return nil, ErrCompetitionClosed
	}

	// 5. Бронируем слоты на доске
	slots, err := uc.book(ctx, entry.Board, req)
	if err != nil {
		return nil, uc.translate(req, err)
	}

	uc.observer.ObserveBookingAttempt(resultSuccess)
	uc.logger.Info("CreateBooking: actor=%s booked %d slots in competition id=%d for %q",
		req.Actor.ID, len(slots), req.CompetitionID, req.BookerName)

	// Конвертируем в response
	resp := &Response{CompetitionID: req.CompetitionID, Slots: make([]BookedSlot, 0, len(slots))}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, BookedSlot{
			TargetID:    s.TargetID,
			SlotID:      s.ID,
			Date:        s.Date,
			Time:        s.Time,
			BookerName:  s.BookedByName,
			BookerClass: s.BookedByClass,
		})
	}
	return resp, nil
}

// book бронирует один слот через Book, несколько через BookMany
func (uc *UseCase) book(ctx context.Context, board *booking.Board, req *Request) ([]domain.TimeSlot, error) {
	if len(req.Slots) == 1 {
		ref := req.Slots[0]
		key := domain.SlotKey{TargetID: ref.TargetID, SlotID: ref.SlotID}

		// Book адресует слот только по ID, принадлежность мишени проверяем здесь
		current, ok := board.Slot(ctx, ref.SlotID)
		if !ok || current.TargetID != ref.TargetID {
			return nil, &booking.Error{
				Op:       "book",
				Kind:     booking.ErrNotFound,
				Failures: []booking.Failure{{Key: key, Err: booking.ErrNotFound}},
			}
		}

		slot, err := board.Book(ctx, booking.BookRequest{
			SlotID:      ref.SlotID,
			ActorID:     req.Actor.ID,
			BookerName:  req.BookerName,
			BookerClass: req.BookerClass,
		})
		if err != nil {
			return nil, err
		}
		return []domain.TimeSlot{*slot}, nil
	}

	keys := make([]domain.SlotKey, 0, len(req.Slots))
	for _, ref := range req.Slots {
		keys = append(keys, domain.SlotKey{TargetID: ref.TargetID, SlotID: ref.SlotID})
	}

	return board.BookMany(ctx, booking.BookManyRequest{
		Keys:        keys,
		ActorID:     req.Actor.ID,
		BookerName:  req.BookerName,
		BookerClass: req.BookerClass,
	})
}

// translate переводит ошибку доски в ошибку use case, сохраняя список слотов
func (uc *UseCase) translate(req *Request, err error) error {
	var bookErr *booking.Error
	if !errors.As(err, &bookErr) {
		uc.logger.Error("CreateBooking: unexpected error for competition id=%d: %v", req.CompetitionID, err)
		uc.observer.ObserveBookingAttempt(resultError)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	var (
		sentinel error
		result   string
	)
	switch {
	case errors.Is(err, booking.ErrInvalidInput):
		sentinel, result = ErrInvalidInput, resultInvalid
	case errors.Is(err, booking.ErrNotFound):
		sentinel, result = ErrSlotNotFound, resultNotFound
	case errors.Is(err, booking.ErrConflict):
		sentinel, result = ErrSlotTaken, resultConflict
	case errors.Is(err, booking.ErrIneligible):
		sentinel, result = ErrIneligible, resultIneligible
	default:
		sentinel, result = ErrInternal, resultError
	}

	uc.logger.Warn("CreateBooking: actor=%s rejected in competition id=%d: %v", req.Actor.ID, req.CompetitionID, err)
	uc.observer.ObserveBookingAttempt(result)
	return fmt.Errorf("%w: %w", sentinel, bookErr)
}

// FailedSlots возвращает слоты, из-за которых бронирование отклонено
func FailedSlots(err error) []domain.SlotKey {
	var bookErr *booking.Error
	if errors.As(err, &bookErr) {
		return bookErr.Keys()
	}
	return nil
}
