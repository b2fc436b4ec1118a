package journal

import (
	"context"
	"database/sql"

	"github.com/m04kA/SMC-RangeBooking/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxBeginner интерфейс для начала транзакций
// Поддерживает *dbmetrics.DB
type TxBeginner interface {
	DBExecutor
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}

// WriteObserver учитывает результаты записи в журнал
type WriteObserver interface {
	ObserveJournalWrite(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
