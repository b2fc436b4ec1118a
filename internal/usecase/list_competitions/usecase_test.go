package list_competitions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	"github.com/m04kA/SMC-RangeBooking/internal/service/availability"
	"github.com/m04kA/SMC-RangeBooking/internal/service/competitions"
	"github.com/m04kA/SMC-RangeBooking/internal/service/eligibility"
	"github.com/m04kA/SMC-RangeBooking/internal/service/schedule"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func setup(t *testing.T) *UseCase {
	t.Helper()

	rule, err := eligibility.New(eligibility.PolicyOpen, nil)
	require.NoError(t, err)
	registry := competitions.NewService(schedule.NewGenerator(rule), nopLogger{})

	fixtures := []domain.Competition{
		{
			ID: 5, Name: "Lørdagsskuddet Toten", Location: "Toten",
			StartDate: day(2025, 10, 11), EndDate: day(2025, 10, 11),
			StartTime: "09:00", EndTime: "12:00", TargetCount: 6, SlotDurationMinutes: 60,
		},
		{
			ID: 7, Name: "Vinterstevne Bergen", Location: "Bergen",
			StartDate: day(2025, 12, 6), EndDate: day(2025, 12, 7),
			StartTime: "10:00", EndTime: "14:00", TargetCount: 4, SlotDurationMinutes: 30,
			Status: domain.CompetitionClosed,
		},
	}
	for _, c := range fixtures {
		_, err := registry.Register(context.Background(), c)
		require.NoError(t, err)
	}

	return NewUseCase(registry, nopLogger{})
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	uc := setup(t)

	t.Run("all competitions with availability", func(t *testing.T) {
		resp, err := uc.Execute(ctx, &Request{})
		require.NoError(t, err)
		require.Len(t, resp.Competitions, 2)

		toten := resp.Competitions[0]
		assert.Equal(t, int64(5), toten.Competition.ID)
		assert.Equal(t, 18, toten.TotalSlots)
		assert.Equal(t, 18, toten.UserAvailable)
		assert.Equal(t, availability.LevelGood, toten.Level)

		assert.Equal(t, domain.CompetitionClosed, resp.Competitions[1].Status)
	})

	t.Run("search and dates", func(t *testing.T) {
		resp, err := uc.Execute(ctx, &Request{Search: "BERGEN"})
		require.NoError(t, err)
		require.Len(t, resp.Competitions, 1)
		assert.Equal(t, int64(7), resp.Competitions[0].Competition.ID)

		from, to := day(2025, 10, 1), day(2025, 10, 31)
		resp, err = uc.Execute(ctx, &Request{From: &from, To: &to})
		require.NoError(t, err)
		require.Len(t, resp.Competitions, 1)
		assert.Equal(t, int64(5), resp.Competitions[0].Competition.ID)
	})

	t.Run("status filter", func(t *testing.T) {
		open := domain.CompetitionOpen
		resp, err := uc.Execute(ctx, &Request{Status: &open})
		require.NoError(t, err)
		require.Len(t, resp.Competitions, 1)
		assert.Equal(t, int64(5), resp.Competitions[0].Competition.ID)
	})

	t.Run("inverted range", func(t *testing.T) {
		from, to := day(2025, 10, 31), day(2025, 10, 1)
		_, err := uc.Execute(ctx, &Request{From: &from, To: &to})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
