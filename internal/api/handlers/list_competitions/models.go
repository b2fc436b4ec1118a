package list_competitions

import (
	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	listCompetitions "github.com/m04kA/SMC-RangeBooking/internal/usecase/list_competitions"
)

// CompetitionResponse HTTP response model карточки соревнования
type CompetitionResponse struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Location           string   `json:"location"`
	StartDate          string   `json:"startDate"`
	EndDate            string   `json:"endDate"`
	StartTime          string   `json:"startTime"`
	EndTime            string   `json:"endTime"`
	TargetCount        int      `json:"targetCount"`
	SlotDuration       int      `json:"slotDuration"`
	TotalSlots         int      `json:"totalSlots"`
	Status             string   `json:"status"`
	Classes            []string `json:"classes,omitempty"`
	UserAvailableSlots int      `json:"userAvailableSlots"`
	GeneratedSlots     int      `json:"generatedSlots"`
	AvailabilityLevel  string   `json:"availabilityLevel"`
}

// ListResponse HTTP response model
type ListResponse struct {
	Competitions []CompetitionResponse `json:"competitions"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *listCompetitions.Response) *ListResponse {
	result := &ListResponse{Competitions: make([]CompetitionResponse, 0, len(resp.Competitions))}
	for _, item := range resp.Competitions {
		c := item.Competition

		var classes []string
		for _, cl := range c.EligibleClasses {
			classes = append(classes, string(cl))
		}

		result.Competitions = append(result.Competitions, CompetitionResponse{
			ID:                 c.ID,
			Name:               c.Name,
			Location:           c.Location,
			StartDate:          c.StartDate.Format(domain.DateFormat),
			EndDate:            c.EndDate.Format(domain.DateFormat),
			StartTime:          c.StartTime.String(),
			EndTime:            c.EndTime.String(),
			TargetCount:        c.TargetCount,
			SlotDuration:       c.SlotDurationMinutes,
			TotalSlots:         c.TotalSlots,
			Status:             string(item.Status),
			Classes:            classes,
			UserAvailableSlots: item.UserAvailable,
			GeneratedSlots:     item.TotalSlots,
			AvailabilityLevel:  string(item.Level),
		})
	}
	return result
}
