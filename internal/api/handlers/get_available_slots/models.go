package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-RangeBooking/internal/usecase/get_available_slots"
)

// SlotResponse HTTP response model слота
type SlotResponse struct {
	ID             string     `json:"id"`
	TargetID       string     `json:"targetId"`
	TargetNumber   int        `json:"targetNumber"`
	Date           string     `json:"date"`
	Time           string     `json:"time"`
	State          string     `json:"state"`
	Available      bool       `json:"available"`
	BookedByName   string     `json:"bookedByName,omitempty"`
	BookedByClass  string     `json:"bookedByClass,omitempty"`
	LockedByMe     bool       `json:"lockedByMe,omitempty"`
	LockExpiresAt  *time.Time `json:"lockExpiresAt,omitempty"`
	AllowedClasses []string   `json:"allowedClasses,omitempty"`
}

// TargetResponse слоты мишени
type TargetResponse struct {
	ID             string         `json:"id"`
	Number         int            `json:"number"`
	Name           string         `json:"name"`
	AvailableCount int            `json:"availableCount"`
	Slots          []SlotResponse `json:"slots"`
}

// RelayDateResponse смена в конкретный день
type RelayDateResponse struct {
	Date           string         `json:"date"`
	AvailableCount int            `json:"availableCount"`
	TotalCount     int            `json:"totalCount"`
	Slots          []SlotResponse `json:"slots"`
}

// RelayResponse смена по времени
type RelayResponse struct {
	Time  string              `json:"time"`
	Dates []RelayDateResponse `json:"dates"`
}

// SlotsResponse HTTP response model
type SlotsResponse struct {
	CompetitionID      int64            `json:"competitionId"`
	Name               string           `json:"name"`
	Status             string           `json:"status"`
	SlotDuration       int              `json:"slotDuration"`
	UserAvailableSlots int              `json:"userAvailableSlots"`
	TotalSlots         int              `json:"totalSlots"`
	AvailabilityLevel  string           `json:"availabilityLevel"`
	Targets            []TargetResponse `json:"targets"`
	Relays             []RelayResponse  `json:"relays"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	result := &SlotsResponse{
		CompetitionID:      resp.Competition.ID,
		Name:               resp.Competition.Name,
		Status:             string(resp.Status),
		SlotDuration:       resp.Competition.SlotDurationMinutes,
		UserAvailableSlots: resp.UserAvailable,
		TotalSlots:         resp.TotalSlots,
		AvailabilityLevel:  string(resp.Level),
		Targets:            make([]TargetResponse, 0, len(resp.Targets)),
		Relays:             make([]RelayResponse, 0, len(resp.Relays)),
	}

	for _, t := range resp.Targets {
		result.Targets = append(result.Targets, TargetResponse{
			ID:             t.Target.ID,
			Number:         t.Target.Number,
			Name:           t.Target.Name,
			AvailableCount: t.AvailableCount,
			Slots:          toSlots(t.Slots),
		})
	}

	for _, relay := range resp.Relays {
		dates := make([]RelayDateResponse, 0, len(relay.Dates))
		for _, d := range relay.Dates {
			dates = append(dates, RelayDateResponse{
				Date:           d.Date.Format(domain.DateFormat),
				AvailableCount: d.AvailableCount,
				TotalCount:     d.TotalCount,
				Slots:          toSlots(d.Slots),
			})
		}
		result.Relays = append(result.Relays, RelayResponse{Time: relay.Time.String(), Dates: dates})
	}

	return result
}

func toSlots(slots []getAvailableSlots.Slot) []SlotResponse {
	result := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		var allowed []string
		for _, c := range s.AllowedClasses {
			allowed = append(allowed, string(c))
		}
		result = append(result, SlotResponse{
			ID:             s.ID,
			TargetID:       s.TargetID,
			TargetNumber:   s.TargetNumber,
			Date:           s.Date.Format(domain.DateFormat),
			Time:           s.Time.String(),
			State:          string(s.State),
			Available:      s.Available,
			BookedByName:   s.BookedByName,
			BookedByClass:  string(s.BookedByClass),
			LockedByMe:     s.LockedByMe,
			LockExpiresAt:  s.LockExpiresAt,
			AllowedClasses: allowed,
		})
	}
	return result
}
