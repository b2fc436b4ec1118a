package booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
)

var (
	// ErrNotFound возвращается, когда слот или мишень не найдены
	ErrNotFound = errors.New("booking: slot not found")

	// ErrConflict возвращается, когда слот уже забронирован или заблокирован другим участником
	ErrConflict = errors.New("booking: slot is not free")

	// ErrIneligible возвращается, когда класс стрелка не допущен на слот
	ErrIneligible = errors.New("booking: class is not eligible for slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("booking: invalid input")

	// ErrUnauthenticated возвращается при попытке анонимной блокировки
	ErrUnauthenticated = errors.New("booking: actor is not authenticated")
)

// kindPrecedence порядок выбора вида агрегированной ошибки
var kindPrecedence = []error{ErrInvalidInput, ErrNotFound, ErrConflict, ErrIneligible}

// Failure причина отказа по одному слоту
type Failure struct {
	Key domain.SlotKey
	Err error
}

// Error агрегированная ошибка операции над слотами.
// errors.Is(err, ErrConflict) срабатывает по Kind.
type Error struct {
	Op       string
	Kind     error
	Failures []Failure
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Key.SlotID, f.Err))
	}
	return fmt.Sprintf("%s: %v [%s]", e.Op, e.Kind, strings.Join(parts, "; "))
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Keys возвращает адреса всех отказавших слотов
func (e *Error) Keys() []domain.SlotKey {
	keys := make([]domain.SlotKey, 0, len(e.Failures))
	for _, f := range e.Failures {
		keys = append(keys, f.Key)
	}
	return keys
}

func newError(op string, failures []Failure) *Error {
	kind := failures[0].Err
	for _, candidate := range kindPrecedence {
		found := false
		for _, f := range failures {
			if errors.Is(f.Err, candidate) {
				found = true
				break
			}
		}
		if found {
			kind = candidate
			break
		}
	}
	return &Error{Op: op, Kind: kind, Failures: failures}
}
