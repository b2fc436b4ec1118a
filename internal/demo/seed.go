// Package demo заполняет доски правдоподобными бронями для демонстраций.
// Ядро этот пакет не вызывает.
package demo

import (
	"context"
	"errors"
	"math/rand"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	"github.com/m04kA/SMC-RangeBooking/internal/service/booking"
)

// ActorID от имени которого делаются демонстрационные брони
const ActorID = "demo"

const anonymousName = "anonym"

var names = []string{
	"Ola Nordmann",
	"Kari Nordmann",
	"Nils Hansen",
	"Anne Olsen",
	"Per Hansen",
	"Lise Olsen",
	"Harald Sandviken",
	"Joakim Eriksen",
	"Ole Petter Hansen",
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Seeder детерминированно бронирует часть слотов через доску
type Seeder struct {
	rng           *rand.Rand
	bookedPercent int
	logger        Logger
}

// NewSeeder создает заполнитель. Одинаковый seed дает одинаковые брони.
func NewSeeder(seed int64, bookedPercent int, logger Logger) *Seeder {
	return &Seeder{
		rng:           rand.New(rand.NewSource(seed)),
		bookedPercent: bookedPercent,
		logger:        logger,
	}
}

// Seed бронирует примерно bookedPercent процентов свободных слотов.
// Доски, на которых уже есть брони, не трогает.
func (s *Seeder) Seed(ctx context.Context, board *booking.Board) (int, error) {
	if board.Unbooked() < board.SlotCount() {
		s.logger.Info("Demo: competition id=%d already has bookings, skipping", board.CompetitionID())
		return 0, nil
	}

	snapshot := board.Snapshot(ctx)
	booked := 0

	for _, target := range board.Targets() {
		for _, slot := range snapshot[target.ID] {
			if s.rng.Intn(100) >= s.bookedPercent {
				continue
			}

			_, err := board.Book(ctx, booking.BookRequest{
				SlotID:      slot.ID,
				ActorID:     ActorID,
				BookerName:  s.pickName(),
				BookerClass: s.pickClass(&slot),
			})
			if err != nil {
				if errors.Is(err, booking.ErrConflict) {
					continue
				}
				return booked, err
			}
			booked++
		}
	}

	s.logger.Info("Demo: booked %d of %d slots in competition id=%d", booked, board.SlotCount(), board.CompetitionID())
	return booked, nil
}

func (s *Seeder) pickName() string {
	if s.rng.Intn(10) == 0 {
		return anonymousName
	}
	return names[s.rng.Intn(len(names))]
}

// pickClass выбирает класс, допущенный на слот
func (s *Seeder) pickClass(slot *domain.TimeSlot) domain.Class {
	if slot.IsRestricted() {
		return slot.AllowedClasses[s.rng.Intn(len(slot.AllowedClasses))]
	}
	base := domain.BaseClasses()
	return base[s.rng.Intn(len(base))]
}
