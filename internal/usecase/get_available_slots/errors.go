package get_available_slots

import "errors"

var (
	// ErrCompetitionNotFound возвращается, когда соревнование не найдено
	ErrCompetitionNotFound = errors.New("get_available_slots: competition not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
