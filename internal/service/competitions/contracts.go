package competitions

import (
	"context"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
)

// BookingSource источник ранее сделанных броней (журнал) для восстановления досок
type BookingSource interface {
	ListByCompetition(ctx context.Context, competitionID int64) ([]domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
