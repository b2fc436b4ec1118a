package journal

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	"github.com/m04kA/SMC-RangeBooking/internal/service/booking"
)

const writeTimeout = 5 * time.Second

// Writer запись броней в журнал
type Writer interface {
	InsertMany(ctx context.Context, bookings []domain.Booking) error
}

// Recorder слушатель доски, дописывающий новые брони в журнал.
// Восстановленные из журнала брони повторно не пишутся.
type Recorder struct {
	writer   Writer
	observer WriteObserver
	logger   Logger
}

// NewRecorder создает слушателя журнала. observer может быть nil.
func NewRecorder(writer Writer, observer WriteObserver, logger Logger) *Recorder {
	return &Recorder{writer: writer, observer: observer, logger: logger}
}

// SlotsChanged реализует booking.Listener
func (r *Recorder) SlotsChanged(ctx context.Context, change booking.Change) {
	if change.Kind != booking.ChangeBooked || len(change.Bookings) == 0 {
		return
	}

	// Бронь уже принята доской, отмена запроса не должна терять запись
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	if err := r.writer.InsertMany(writeCtx, change.Bookings); err != nil {
		r.logger.Error("Journal: failed to record %d bookings of competition id=%d: %v",
			len(change.Bookings), change.CompetitionID, err)
		r.observe("error")
		return
	}

	r.observe("success")
}

func (r *Recorder) observe(result string) {
	if r.observer != nil {
		r.observer.ObserveJournalWrite(result)
	}
}
