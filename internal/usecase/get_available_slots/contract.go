package get_available_slots

import (
	"github.com/m04kA/SMC-RangeBooking/internal/service/competitions"
)

// CompetitionRegistry интерфейс реестра соревнований
type CompetitionRegistry interface {
	Get(id int64) (*competitions.Entry, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
