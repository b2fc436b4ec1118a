package get_available_slots

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CompetitionID <= 0 {
		return fmt.Errorf("%w: competitionID must be positive", ErrInvalidInput)
	}
	return nil
}
