package competitions

import "errors"

var (
	// ErrCompetitionNotFound возвращается, когда соревнование не зарегистрировано
	ErrCompetitionNotFound = errors.New("competitions.service: competition not found")

	// ErrAlreadyRegistered возвращается при повторной регистрации идентификатора
	ErrAlreadyRegistered = errors.New("competitions.service: competition already registered")

	// ErrInvalidCompetition возвращается, когда расписание соревнования некорректно
	ErrInvalidCompetition = errors.New("competitions.service: invalid competition")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("competitions.service: internal error")
)
