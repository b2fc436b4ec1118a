package schedule

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
)

// GenerateTargets создает targetCount мишеней с номерами 1..targetCount.
// Одинаковые входные данные всегда дают одинаковые идентификаторы.
func GenerateTargets(competitionID int64, targetCount int) []domain.Target {
	if targetCount <= 0 {
		return []domain.Target{}
	}

	targets := make([]domain.Target, 0, targetCount)
	for n := 1; n <= targetCount; n++ {
		targets = append(targets, domain.Target{
			ID:            domain.TargetID(competitionID, n),
			CompetitionID: competitionID,
			Number:        n,
			Name:          fmt.Sprintf("Target %d", n),
		})
	}
	return targets
}

// GenerateDateRange возвращает все календарные даты от startDate до endDate включительно
func GenerateDateRange(startDate, endDate time.Time) ([]time.Time, error) {
	start, end := domain.DateOnly(startDate), domain.DateOnly(endDate)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date %s is before start date %s",
			ErrInvalidSchedule, end.Format(domain.DateFormat), start.Format(domain.DateFormat))
	}

	dates := make([]time.Time, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates, nil
}
