package create_booking

import "errors"

var (
	// ErrCompetitionNotFound возвращается, когда соревнование не найдено
	ErrCompetitionNotFound = errors.New("create_booking: competition not found")

	// ErrCompetitionClosed возвращается, когда соревнование закрыто для записи
	ErrCompetitionClosed = errors.New("create_booking: competition is closed")

	// ErrSlotNotFound возвращается, когда слот не найден или не принадлежит мишени
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotTaken возвращается, когда слот уже забронирован или удерживается другим участником
	ErrSlotTaken = errors.New("create_booking: slot is taken")

	// ErrIneligible возвращается, когда класс стрелка не допущен на слот
	ErrIneligible = errors.New("create_booking: class is not eligible for slot")

	// ErrUnauthenticated возвращается, когда бронирует анонимный участник
	ErrUnauthenticated = errors.New("create_booking: actor is not authenticated")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
