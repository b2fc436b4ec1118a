package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	"github.com/m04kA/SMC-RangeBooking/internal/service/booking"
	"github.com/m04kA/SMC-RangeBooking/pkg/dbmetrics"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type countingObserver struct {
	results map[string]int
}

func (o *countingObserver) ObserveJournalWrite(result string) {
	if o.results == nil {
		o.results = make(map[string]int)
	}
	o.results[result]++
}

type failingWriter struct{}

func (failingWriter) InsertMany(context.Context, []domain.Booking) error {
	return errors.New("disk full")
}

func newRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := Open(DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewRepository(dbmetrics.Wrap(db, nil), DriverSQLite)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func record(id, slotID string, bookedAt time.Time) domain.Booking {
	return domain.Booking{
		ID:            id,
		CompetitionID: 5,
		TargetID:      "5-target-1",
		SlotID:        slotID,
		Date:          time.Date(2025, 10, 11, 0, 0, 0, 0, time.UTC),
		Time:          "09:00",
		BookerName:    "Kari Nordmann",
		BookerClass:   domain.ClassAA,
		ActorID:       "u1",
		BookedAt:      bookedAt,
	}
}

func TestRepository_InsertAndList(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)
	at := time.Date(2025, 9, 1, 12, 30, 15, 0, time.UTC)

	require.NoError(t, repo.InsertMany(ctx, []domain.Booking{
		record("b2", "5-target-1-slot-1-2025-10-11", at.Add(time.Second)),
		record("b1", "5-target-1-slot-0-2025-10-11", at),
	}))

	got, err := repo.ListByCompetition(ctx, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, record("b1", "5-target-1-slot-0-2025-10-11", at), got[0])
	assert.Equal(t, "b2", got[1].ID)

	empty, err := repo.ListByCompetition(ctx, 6)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRepository_InsertIsIdempotentPerSlot(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)
	at := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.InsertMany(ctx, []domain.Booking{record("b1", "5-target-1-slot-0-2025-10-11", at)}))
	require.NoError(t, repo.InsertMany(ctx, []domain.Booking{record("b9", "5-target-1-slot-0-2025-10-11", at)}))

	got, err := repo.ListByCompetition(ctx, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b1", got[0].ID)
}

func TestRepository_MigrateTwice(t *testing.T) {
	repo := newRepository(t)
	assert.NoError(t, repo.Migrate(context.Background()))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("mysql", "dsn")
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestRecorder(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	bookings := []domain.Booking{record("b1", "5-target-1-slot-0-2025-10-11", at)}

	t.Run("records booked changes only", func(t *testing.T) {
		repo := newRepository(t)
		observer := &countingObserver{}
		recorder := NewRecorder(repo, observer, nopLogger{})

		recorder.SlotsChanged(ctx, booking.Change{CompetitionID: 5, Kind: booking.ChangeRestored, Bookings: bookings})
		recorder.SlotsChanged(ctx, booking.Change{CompetitionID: 5, Kind: booking.ChangeLocked})

		got, err := repo.ListByCompetition(ctx, 5)
		require.NoError(t, err)
		assert.Empty(t, got)

		recorder.SlotsChanged(ctx, booking.Change{CompetitionID: 5, Kind: booking.ChangeBooked, Bookings: bookings})

		got, err = repo.ListByCompetition(ctx, 5)
		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, 1, observer.results["success"])
	})

	t.Run("survives cancelled request context", func(t *testing.T) {
		repo := newRepository(t)
		recorder := NewRecorder(repo, nil, nopLogger{})

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		recorder.SlotsChanged(cancelled, booking.Change{CompetitionID: 5, Kind: booking.ChangeBooked, Bookings: bookings})

		got, err := repo.ListByCompetition(ctx, 5)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("write failure is counted", func(t *testing.T) {
		observer := &countingObserver{}
		recorder := NewRecorder(failingWriter{}, observer, nopLogger{})

		recorder.SlotsChanged(ctx, booking.Change{CompetitionID: 5, Kind: booking.ChangeBooked, Bookings: bookings})
		assert.Equal(t, 1, observer.results["error"])
	})
}
