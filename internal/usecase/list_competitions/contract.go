package list_competitions

import (
	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	"github.com/m04kA/SMC-RangeBooking/internal/service/competitions"
)

// CompetitionRegistry интерфейс реестра соревнований
type CompetitionRegistry interface {
	List(filter domain.CompetitionFilter) []competitions.Entry
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
