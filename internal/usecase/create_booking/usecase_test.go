package create_booking

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	"github.com/m04kA/SMC-RangeBooking/internal/service/competitions"
	"github.com/m04kA/SMC-RangeBooking/internal/service/eligibility"
	"github.com/m04kA/SMC-RangeBooking/internal/service/schedule"
	"github.com/m04kA/SMC-RangeBooking/pkg/types"
)

const (
	target1 = "5-target-1"
	target2 = "5-target-2"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type recordingObserver struct {
	mu      sync.Mutex
	results []string
}

func (o *recordingObserver) ObserveBookingAttempt(result string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results = append(o.results, result)
}

func slotID(targetID string, index int) string {
	return targetID + "-slot-" + string(rune('0'+index)) + "-2025-10-11"
}

func setup(t *testing.T, status domain.CompetitionStatus) (*UseCase, *competitions.Service, *recordingObserver) {
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

	observer := &recordingObserver{}
	return NewUseCase(registry, observer, nopLogger{}), registry, observer
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	kari := &domain.Actor{ID: "u1", Name: "Kari Nordmann", BaseClass: domain.Class3}

	t.Run("single slot defaults booker to actor", func(t *testing.T) {
		uc, registry, observer := setup(t, domain.CompetitionOpen)

		resp, err := uc.Execute(ctx, &Request{
			CompetitionID: 5,
			Actor:         kari,
			Slots:         []SlotRef{{TargetID: target1, SlotID: slotID(target1, 0)}},
		})
		require.NoError(t, err)
		require.Len(t, resp.Slots, 1)
		assert.Equal(t, "Kari Nordmann", resp.Slots[0].BookerName)
		assert.Equal(t, domain.Class3, resp.Slots[0].BookerClass)
		assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].Time)
		assert.Equal(t, []string{resultSuccess}, observer.results)

		board, err := registry.Board(5)
		require.NoError(t, err)
		assert.Equal(t, 17, board.Unbooked())
	})

	t.Run("books for someone else", func(t *testing.T) {
		uc, _, _ := setup(t, domain.CompetitionOpen)

		resp, err := uc.Execute(ctx, &Request{
			CompetitionID: 5,
			Actor:         kari,
			Slots:         []SlotRef{{TargetID: target1, SlotID: slotID(target1, 1)}},
			BookerName:    "Ola Nordmann",
			BookerClass:   domain.ClassJEG,
		})
		require.NoError(t, err)
		assert.Equal(t, "Ola Nordmann", resp.Slots[0].BookerName)
	})

	t.Run("many slots all or nothing", func(t *testing.T) {
		uc, registry, observer := setup(t, domain.CompetitionOpen)

		_, err := uc.Execute(ctx, &Request{
			CompetitionID: 5,
			Actor:         kari,
			Slots: []SlotRef{
				{TargetID: target1, SlotID: slotID(target1, 0)},
				{TargetID: target2, SlotID: slotID(target2, 1)},
			},
		})
		assert.ErrorIs(t, err, ErrIneligible)
		assert.Equal(t, []domain.SlotKey{{TargetID: target2, SlotID: slotID(target2, 1)}}, FailedSlots(err))
		assert.Equal(t, []string{resultIneligible}, observer.results)

		board, err := registry.Board(5)
		require.NoError(t, err)
		assert.Equal(t, 18, board.Unbooked())

		resp, err := uc.Execute(ctx, &Request{
			CompetitionID: 5,
			Actor:         kari,
			Slots: []SlotRef{
				{TargetID: target1, SlotID: slotID(target1, 0)},
				{TargetID: target2, SlotID: slotID(target2, 2)},
			},
		})
		require.NoError(t, err)
		assert.Len(t, resp.Slots, 2)
		assert.Equal(t, 16, board.Unbooked())
	})

	t.Run("taken slot", func(t *testing.T) {
		uc, _, _ := setup(t, domain.CompetitionOpen)
		req := func() *Request {
			return &Request{
				CompetitionID: 5,
				Actor:         kari,
				Slots:         []SlotRef{{TargetID: target1, SlotID: slotID(target1, 0)}},
			}
		}

		_, err := uc.Execute(ctx, req())
		require.NoError(t, err)

		_, err = uc.Execute(ctx, req())
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("slot of another target", func(t *testing.T) {
		uc, _, _ := setup(t, domain.CompetitionOpen)

		_, err := uc.Execute(ctx, &Request{
			CompetitionID: 5,
			Actor:         kari,
			Slots:         []SlotRef{{TargetID: target2, SlotID: slotID(target1, 0)}},
		})
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("closed competition", func(t *testing.T) {
		uc, _, _ := setup(t, domain.CompetitionClosed)

		_, err := uc.Execute(ctx, &Request{
			CompetitionID: 5,
			Actor:         kari,
			Slots:         []SlotRef{{TargetID: target1, SlotID: slotID(target1, 0)}},
		})
		assert.ErrorIs(t, err, ErrCompetitionClosed)
	})

	t.Run("unknown competition", func(t *testing.T) {
		uc, _, observer := setup(t, domain.CompetitionOpen)

		_, err := uc.Execute(ctx, &Request{
			CompetitionID: 42,
			Actor:         kari,
			Slots:         []SlotRef{{TargetID: target1, SlotID: slotID(target1, 0)}},
		})
		assert.ErrorIs(t, err, ErrCompetitionNotFound)
		assert.Equal(t, []string{resultNotFound}, observer.results)
	})

	t.Run("anonymous actor", func(t *testing.T) {
		uc, _, _ := setup(t, domain.CompetitionOpen)

		_, err := uc.Execute(ctx, &Request{
			CompetitionID: 5,
			Slots:         []SlotRef{{TargetID: target1, SlotID: slotID(target1, 0)}},
			BookerName:    "Kari",
			BookerClass:   domain.Class3,
		})
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestValidateRequest(t *testing.T) {
	valid := func() *Request {
		return &Request{
			CompetitionID: 5,
			Slots:         []SlotRef{{TargetID: target1, SlotID: slotID(target1, 0)}},
			BookerName:    "Kari",
			BookerClass:   domain.Class3,
		}
	}

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "competition id", mutate: func(r *Request) { r.CompetitionID = 0 }},
		{name: "no slots", mutate: func(r *Request) { r.Slots = nil }},
		{name: "missing slot id", mutate: func(r *Request) { r.Slots[0].SlotID = "" }},
		{name: "missing booker name", mutate: func(r *Request) { r.BookerName = "" }},
		{name: "long booker name", mutate: func(r *Request) { r.BookerName = strings.Repeat("a", domain.MaxBookerNameLength+1) }},
		{name: "unknown class", mutate: func(r *Request) { r.BookerClass = "X" }},
		{name: "too many slots", mutate: func(r *Request) {
			r.Slots = make([]SlotRef, domain.MaxSlotsPerBooking+1)
			for i := range r.Slots {
				r.Slots[i] = SlotRef{TargetID: target1, SlotID: slotID(target1, 0)}
			}
		}},
	}

	require.NoError(t, validateRequest(valid()))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)
			assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
		})
	}
}
