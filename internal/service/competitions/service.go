package competitions

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	"github.com/m04kA/SMC-RangeBooking/internal/service/booking"
	"github.com/m04kA/SMC-RangeBooking/internal/service/schedule"
)

// Entry зарегистрированное соревнование и его доска слотов
type Entry struct {
	Competition domain.Competition
	Status      domain.CompetitionStatus // эффективный статус на момент чтения
	Board       *booking.Board
}

type entry struct {
	competition domain.Competition
	board       *booking.Board
}

// Service реестр соревнований в памяти
type Service struct {
	mu        sync.RWMutex
	entries   map[int64]*entry
	generator *schedule.Generator
	boardOpts []booking.Option
	source    BookingSource
	logger    Logger
}

// Option настройка сервиса
type Option func(*Service)

// WithBoardOptions передает настройки каждой создаваемой доске
func WithBoardOptions(opts ...booking.Option) Option {
	return func(s *Service) {
		s.boardOpts = append(s.boardOpts, opts...)
	}
}

// WithBookingSource включает восстановление броней при регистрации
func WithBookingSource(source BookingSource) Option {
	return func(s *Service) {
		s.source = source
	}
}

// NewService создает новый экземпляр сервиса соревнований
func NewService(generator *schedule.Generator, logger Logger, opts ...Option) *Service {
	s := &Service{
		entries:   make(map[int64]*entry),
		generator: generator,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register валидирует соревнование, генерирует слоты и создает доску.
// Если подключен журнал, ранее сделанные брони восстанавливаются.
func (s *Service) Register(ctx context.Context, c domain.Competition) (*Entry, error) {
	s.logger.Info("Register: competition id=%d name=%q", c.ID, c.Name)

	if c.Status == "" {
		c.Status = domain.CompetitionOpen
	}
	c.EligibleClasses = append([]domain.Class(nil), c.EligibleClasses...)

	layout, err := s.generator.Build(&c)
	if err != nil {
		s.logger.Warn("Register: invalid schedule for competition id=%d: %v", c.ID, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidCompetition, err)
	}

	board := booking.NewBoard(c.ID, layout, s.boardOpts...)

	s.mu.Lock()
	if _, exists := s.entries[c.ID]; exists {
		s.mu.Unlock()
		s.logger.Warn("Register: competition id=%d already registered", c.ID)
		return nil, ErrAlreadyRegistered
	}
	s.entries[c.ID] = &entry{competition: c, board: board}
	s.mu.Unlock()

	if s.source != nil {
		if err := s.restore(ctx, board); err != nil {
			s.mu.Lock()
			delete(s.entries, c.ID)
			s.mu.Unlock()
			return nil, err
		}
	}

	s.logger.Info("Register: competition id=%d registered with %d targets, %d slots (declared capacity %d)",
		c.ID, len(layout.Targets), layout.SlotCount(), c.TotalSlots)

	return &Entry{Competition: c, Status: effectiveStatus(&c, board), Board: board}, nil
}

func (s *Service) restore(ctx context.Context, board *booking.Board) error {
	records, err := s.source.ListByCompetition(ctx, board.CompetitionID())
	if err != nil {
		s.logger.Error("Register: failed to load journal for competition id=%d: %v", board.CompetitionID(), err)
		return fmt.Errorf("%w: load journal: %v", ErrInternal, err)
	}

	restored, err := board.Restore(ctx, records)
	if err != nil {
		var bookErr *booking.Error
		if !errors.As(err, &bookErr) {
			return fmt.Errorf("%w: restore: %v", ErrInternal, err)
		}
		// Слоты, которых больше нет в расписании, пропускаем
		s.logger.Warn("Register: %d journal records of competition id=%d do not match the schedule",
			len(bookErr.Failures), board.CompetitionID())
	}

	if restored > 0 {
		s.logger.Info("Register: restored %d bookings for competition id=%d", restored, board.CompetitionID())
	}
	return nil
}

// Get возвращает соревнование с эффективным статусом
func (s *Service) Get(id int64) (*Entry, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrCompetitionNotFound
	}
	return &Entry{Competition: e.competition, Status: effectiveStatus(&e.competition, e.board), Board: e.board}, nil
}

// Board возвращает доску слотов соревнования
func (s *Service) Board(id int64) (*booking.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, ErrCompetitionNotFound
	}
	return e.board, nil
}

// Boards возвращает доски всех соревнований
func (s *Service) Boards() []*booking.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()

	boards := make([]*booking.Board, 0, len(s.entries))
	for _, e := range s.entries {
		boards = append(boards, e.board)
	}
	return boards
}

// List возвращает соревнования, прошедшие фильтр, по дате начала
func (s *Service) List(filter domain.CompetitionFilter) []Entry {
	s.mu.RLock()
	result := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if !filter.Matches(&e.competition) {
			continue
		}
		status := effectiveStatus(&e.competition, e.board)
		if filter.Status != nil && *filter.Status != status {
			continue
		}
		result = append(result, Entry{Competition: e.competition, Status: status, Board: e.board})
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].Competition, result[j].Competition
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.Before(b.StartDate)
		}
		return a.ID < b.ID
	})
	return result
}

// effectiveStatus Closed остается Closed, без свободных слотов соревнование Full
func effectiveStatus(c *domain.Competition, board *booking.Board) domain.CompetitionStatus {
	switch {
	case c.Status == domain.CompetitionClosed:
		return domain.CompetitionClosed
	case c.Status == domain.CompetitionFull || board.Unbooked() == 0:
		return domain.CompetitionFull
	default:
		return domain.CompetitionOpen
	}
}
