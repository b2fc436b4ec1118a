package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RangeBooking/pkg/types"
)

// SlotState represents the booking state of a time slot
type SlotState string

const (
	SlotFree   SlotState = "free"
	SlotLocked SlotState = "locked"
	SlotBooked SlotState = "booked"
)

// TimeSlot is one reservable (target, date, time) cell
type TimeSlot struct {
	ID       string
	TargetID string
	Index    int // position within the target's day
	Time     types.TimeString
	Date     time.Time

	IsBooked        bool
	IsLocked        bool
	BookedByName    string
	BookedByClass   Class
	BookedByActorID string
	LockedBy        string
	LockExpiresAt   time.Time

	// AllowedClasses is nil when the slot is open to every class
	AllowedClasses []Class
}

// SlotID builds the stable identifier "<targetId>-slot-<index>-<YYYY-MM-DD>"
func SlotID(targetID string, index int, date time.Time) string {
	return fmt.Sprintf("%s-slot-%d-%s", targetID, index, date.Format(DateFormat))
}

// State returns the current booking state
func (s *TimeSlot) State() SlotState {
	switch {
	case s.IsBooked:
		return SlotBooked
	case s.IsLocked:
		return SlotLocked
	default:
		return SlotFree
	}
}

// IsRestricted reports whether the slot carries a class restriction
func (s *TimeSlot) IsRestricted() bool {
	return len(s.AllowedClasses) > 0
}

// Allows reports whether a holder of classes may use the slot.
// Unrestricted slots allow everyone.
func (s *TimeSlot) Allows(classes []Class) bool {
	if !s.IsRestricted() {
		return true
	}
	for _, allowed := range s.AllowedClasses {
		for _, c := range classes {
			if c == allowed {
				return true
			}
		}
	}
	return false
}

// Clone returns a copy safe to hand out of the booking board
func (s *TimeSlot) Clone() TimeSlot {
	c := *s
	if s.AllowedClasses != nil {
		c.AllowedClasses = append([]Class(nil), s.AllowedClasses...)
	}
	return c
}

// SlotKey addresses a slot through its target
type SlotKey struct {
	TargetID string
	SlotID   string
}

func (k SlotKey) String() string {
	return k.TargetID + "/" + k.SlotID
}
