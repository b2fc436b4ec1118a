package holds

import "errors"

var (
	// ErrCompetitionNotFound возвращается, когда соревнование не найдено
	ErrCompetitionNotFound = errors.New("holds.service: competition not found")

	// ErrCompetitionClosed возвращается для закрытого соревнования
	ErrCompetitionClosed = errors.New("holds.service: competition is closed")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("holds.service: slot not found")

	// ErrSlotTaken возвращается, когда слот забронирован или удерживается другим участником
	ErrSlotTaken = errors.New("holds.service: slot is taken")

	// ErrIneligible возвращается, когда у участника нет допущенного класса
	ErrIneligible = errors.New("holds.service: actor is not eligible for slot")

	// ErrUnauthenticated возвращается для анонимного участника
	ErrUnauthenticated = errors.New("holds.service: actor is not authenticated")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("holds.service: internal error")
)
