package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-RangeBooking/pkg/types"
)

// CompetitionStatus represents the declared or derived status of a competition
type CompetitionStatus string

const (
	CompetitionOpen   CompetitionStatus = "open"
	CompetitionFull   CompetitionStatus = "full"
	CompetitionClosed CompetitionStatus = "closed"
)

// ParseCompetitionStatus parses a status name; empty means open
func ParseCompetitionStatus(s string) (CompetitionStatus, error) {
	switch CompetitionStatus(strings.ToLower(s)) {
	case "", CompetitionOpen:
		return CompetitionOpen, nil
	case CompetitionFull:
		return CompetitionFull, nil
	case CompetitionClosed:
		return CompetitionClosed, nil
	default:
		return "", fmt.Errorf("unknown competition status %q", s)
	}
}

// Competition is a shooting event with a fixed daily window, a number of
// targets and a fixed slot duration. Immutable once registered.
type Competition struct {
	ID                  int64
	Name                string
	Location            string
	StartDate           time.Time
	EndDate             time.Time
	StartTime           types.TimeString
	EndTime             types.TimeString
	TargetCount         int
	SlotDurationMinutes int
	TotalSlots          int
	Status              CompetitionStatus
	EligibleClasses     []Class // informational, slot eligibility comes from the rule
}

// Days returns the number of calendar days in the inclusive date range
func (c *Competition) Days() int {
	start, end := DateOnly(c.StartDate), DateOnly(c.EndDate)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// WindowMinutes returns the length of the daily window
func (c *Competition) WindowMinutes() (int, error) {
	start, err := c.StartTime.Minutes()
	if err != nil {
		return 0, err
	}
	end, err := c.EndTime.Minutes()
	if err != nil {
		return 0, err
	}
	return end - start, nil
}

// CalculateTotalSlots returns floor(days * hours * targets * 60 / duration).
// Integer minutes keep the result exact for fractional hour windows.
func CalculateTotalSlots(days, windowMinutes, targetCount, slotDurationMinutes int) int {
	if days <= 0 || windowMinutes <= 0 || targetCount <= 0 || slotDurationMinutes <= 0 {
		return 0
	}
	return days * windowMinutes * targetCount / slotDurationMinutes
}

// CompetitionFilter filter for competition listings
type CompetitionFilter struct {
	Search string     // matched against name and location, case insensitive
	From   *time.Time // competitions ending on or after this date
	To     *time.Time // competitions starting on or before this date
	Status *CompetitionStatus
}

// Matches reports whether the competition passes the search and date filters.
// Status is matched against the effective status by the caller.
func (f CompetitionFilter) Matches(c *Competition) bool {
	if term := strings.TrimSpace(strings.ToLower(f.Search)); term != "" {
		if !strings.Contains(strings.ToLower(c.Name), term) &&
			!strings.Contains(strings.ToLower(c.Location), term) {
			return false
		}
	}
	if f.From != nil && DateOnly(c.EndDate).Before(DateOnly(*f.From)) {
		return false
	}
	if f.To != nil && DateOnly(c.StartDate).After(DateOnly(*f.To)) {
		return false
	}
	return true
}

// DateOnly truncates t to midnight UTC of its calendar date
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
