package holds

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	"github.com/m04kA/SMC-RangeBooking/internal/service/booking"
	"github.com/m04kA/SMC-RangeBooking/internal/service/competitions"
	"github.com/m04kA/SMC-RangeBooking/internal/service/eligibility"
	"github.com/m04kA/SMC-RangeBooking/internal/service/schedule"
	"github.com/m04kA/SMC-RangeBooking/pkg/types"
)

const (
	openSlot       = "5-target-1-slot-0-2025-10-11"
	restrictedSlot = "5-target-1-slot-1-2025-10-11"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRegistry(t *testing.T, status domain.CompetitionStatus) *competitions.Service {
	t.Helper()

	rule := eligibility.RuleFunc(func(_ time.Time, at types.TimeString) []domain.Class {
		if at == "10:00" {
			return []domain.Class{domain.ClassJEG}
		}
		return nil
	})
	registry := competitions.NewService(schedule.NewGenerator(rule), nopLogger{})

	_, err := registry.Register(context.Background(), domain.Competition{
		ID:                  5,
		Name:                "Lørdagsskuddet Toten",
		Location:            "Toten",
		StartDate:           time.Date(2025, 10, 11, 0, 0, 0, 0, time.UTC),
		EndDate:             time.Date(2025, 10, 11, 0, 0, 0, 0, time.UTC),
		StartTime:           "09:00",
		EndTime:             "12:00",
		TargetCount:         6,
		SlotDurationMinutes: 60,
		Status:              status,
	})
	require.NoError(t, err)
	return registry
}

func TestService_Lock(t *testing.T) {
	ctx := context.Background()
	kari := &domain.Actor{ID: "u1", Name: "Kari", BaseClass: domain.Class3}
	ola := &domain.Actor{ID: "u2", Name: "Ola", BaseClass: domain.Class1, Classes: []domain.Class{domain.ClassJEG}}

	t.Run("locks free slot", func(t *testing.T) {
		svc := NewService(newRegistry(t, domain.CompetitionOpen), nopLogger{})

		lock, err := svc.Lock(ctx, 5, openSlot, kari)
		require.NoError(t, err)
		assert.Equal(t, "u1", lock.ActorID)
		assert.Equal(t, openSlot, lock.SlotID)
	})

	t.Run("slot held by another actor", func(t *testing.T) {
		svc := NewService(newRegistry(t, domain.CompetitionOpen), nopLogger{})

		_, err := svc.Lock(ctx, 5, openSlot, kari)
		require.NoError(t, err)
		_, err = svc.Lock(ctx, 5, openSlot, ola)
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("ineligible actor", func(t *testing.T) {
		svc := NewService(newRegistry(t, domain.CompetitionOpen), nopLogger{})

		_, err := svc.Lock(ctx, 5, restrictedSlot, kari)
		assert.ErrorIs(t, err, ErrIneligible)

		_, err = svc.Lock(ctx, 5, restrictedSlot, ola)
		assert.NoError(t, err)
	})

	t.Run("anonymous actor", func(t *testing.T) {
		svc := NewService(newRegistry(t, domain.CompetitionOpen), nopLogger{})

		_, err := svc.Lock(ctx, 5, openSlot, nil)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("unknown competition and slot", func(t *testing.T) {
		svc := NewService(newRegistry(t, domain.CompetitionOpen), nopLogger{})

		_, err := svc.Lock(ctx, 42, openSlot, kari)
		assert.ErrorIs(t, err, ErrCompetitionNotFound)

		_, err = svc.Lock(ctx, 5, "5-target-1-slot-99-2025-10-11", kari)
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("closed competition", func(t *testing.T) {
		svc := NewService(newRegistry(t, domain.CompetitionClosed), nopLogger{})

		_, err := svc.Lock(ctx, 5, openSlot, kari)
		assert.ErrorIs(t, err, ErrCompetitionClosed)
	})
}

func TestService_Release(t *testing.T) {
	ctx := context.Background()
	kari := &domain.Actor{ID: "u1", Name: "Kari", BaseClass: domain.Class3}
	ola := &domain.Actor{ID: "u2", Name: "Ola", BaseClass: domain.Class1}

	registry := newRegistry(t, domain.CompetitionOpen)
	svc := NewService(registry, nopLogger{})

	_, err := svc.Lock(ctx, 5, openSlot, kari)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Release(ctx, 5, openSlot, ola), ErrSlotTaken)
	require.NoError(t, svc.Release(ctx, 5, openSlot, kari))
	assert.NoError(t, svc.Release(ctx, 5, openSlot, kari), "releasing a free slot is a no-op")

	board, err := registry.Board(5)
	require.NoError(t, err)
	slot, ok := board.Slot(ctx, openSlot)
	require.True(t, ok)
	assert.Equal(t, domain.SlotFree, slot.State())

	_, err = board.Book(ctx, booking.BookRequest{SlotID: openSlot, ActorID: "u2", BookerName: "Ola", BookerClass: domain.Class1})
	require.NoError(t, err)
	assert.NoError(t, svc.Release(ctx, 5, openSlot, kari), "booked slot holds no lock")
}
