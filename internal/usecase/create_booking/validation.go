package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
)

// applyDefaults подставляет имя и класс участника, если бронь делается на себя
func applyDefaults(req *Request) {
	req.BookerName = strings.TrimSpace(req.BookerName)
	if req.BookerName == "" && req.Actor != nil {
		req.BookerName = strings.TrimSpace(req.Actor.Name)
	}
	if req.BookerClass == "" && req.Actor != nil {
		req.BookerClass = req.Actor.BaseClass
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CompetitionID <= 0 {
		return fmt.Errorf("%w: competitionID must be positive", ErrInvalidInput)
	}

	if len(req.Slots) == 0 {
		return fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}

	if len(req.Slots) > domain.MaxSlotsPerBooking {
		return fmt.Errorf("%w: at most %d slots per booking", ErrInvalidInput, domain.MaxSlotsPerBooking)
	}

	for i, ref := range req.Slots {
		if ref.TargetID == "" || ref.SlotID == "" {
			return fmt.Errorf("%w: slots[%d] requires targetId and slotId", ErrInvalidInput, i)
		}
	}

	if req.BookerName == "" {
		return fmt.Errorf("%w: bookerName is required", ErrInvalidInput)
	}

	if len([]rune(req.BookerName)) > domain.MaxBookerNameLength {
		return fmt.Errorf("%w: bookerName must be at most %d characters", ErrInvalidInput, domain.MaxBookerNameLength)
	}

	// Класс стрелка должен быть из таксономии
	if !domain.IsValidClass(req.BookerClass) {
		return fmt.Errorf("%w: unknown bookerClass %q", ErrInvalidInput, req.BookerClass)
	}

	return nil
}
