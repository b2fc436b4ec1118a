package journal

import "errors"

var (
	// ErrUnknownDriver возвращается для неподдерживаемого драйвера БД
	ErrUnknownDriver = errors.New("journal.repository: unknown driver")

	// ErrOpen возвращается при ошибке подключения к БД
	ErrOpen = errors.New("journal.repository: failed to open database")

	// ErrMigrate возвращается при ошибке создания схемы
	ErrMigrate = errors.New("journal.repository: failed to migrate")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("journal.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("journal.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("journal.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("journal.repository: failed to scan row")
)
