package schedule

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
)

// ValidateSchedule проверяет параметры соревнования до генерации слотов.
// Заполняет TotalSlots, если он не задан, и сверяет его, если задан.
func ValidateSchedule(c *domain.Competition) error {
	if c == nil {
		return fmt.Errorf("%w: competition is nil", ErrInvalidSchedule)
	}

	if c.ID <= 0 {
		return fmt.Errorf("%w: competition id must be positive", ErrInvalidSchedule)
	}

	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidSchedule)
	}

	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidSchedule)
	}

	if domain.DateOnly(c.EndDate).Before(domain.DateOnly(c.StartDate)) {
		return fmt.Errorf("%w: end date is before start date", ErrInvalidSchedule)
	}

	if err := c.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidSchedule, err)
	}
	if err := c.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end time: %v", ErrInvalidSchedule, err)
	}

	window, err := c.WindowMinutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	if window <= 0 {
		return fmt.Errorf("%w: end time %s is not after start time %s", ErrInvalidSchedule, c.EndTime, c.StartTime)
	}

	if c.SlotDurationMinutes < domain.MinSlotDurationMinutes || c.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must be between %d and %d minutes",
			ErrInvalidSchedule, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if c.TargetCount < domain.MinTargetCount || c.TargetCount > domain.MaxTargetCount {
		return fmt.Errorf("%w: target count must be between %d and %d",
			ErrInvalidSchedule, domain.MinTargetCount, domain.MaxTargetCount)
	}

	if err := domain.ValidateClasses(c.EligibleClasses); err != nil {
		return fmt.Errorf("%w: eligible classes: %v", ErrInvalidSchedule, err)
	}

	expected := domain.CalculateTotalSlots(c.Days(), window, c.TargetCount, c.SlotDurationMinutes)
	if c.TotalSlots == 0 {
		c.TotalSlots = expected
	} else if c.TotalSlots != expected {
		return fmt.Errorf("%w: declared total slots %d, expected %d", ErrInvalidSchedule, c.TotalSlots, expected)
	}

	return nil
}
