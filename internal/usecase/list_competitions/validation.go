package list_competitions

import (
	"fmt"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.From != nil && req.To != nil && domain.DateOnly(*req.To).Before(domain.DateOnly(*req.From)) {
		return fmt.Errorf("%w: 'to' must not be before 'from'", ErrInvalidInput)
	}
	return nil
}
