package create_booking

import (
	"github.com/m04kA/SMC-RangeBooking/internal/service/competitions"
)

// CompetitionRegistry интерфейс реестра соревнований
type CompetitionRegistry interface {
	Get(id int64) (*competitions.Entry, error)
}

// AttemptObserver учитывает результаты попыток бронирования
type AttemptObserver interface {
	ObserveBookingAttempt(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type nopObserver struct{}

func (nopObserver) ObserveBookingAttempt(string) {}
