package domain

import (
	"time"

	"github.com/m04kA/SMC-RangeBooking/pkg/types"
)

// Booking is the record of a slot moving to Booked
type Booking struct {
	ID            string
	CompetitionID int64
	TargetID      string
	SlotID        string
	Date          time.Time
	Time          types.TimeString

	// BookerName may differ from the actor when booking on behalf of someone
	BookerName  string
	BookerClass Class
	ActorID     string

	BookedAt time.Time
}

// Key returns the slot address of the booking
func (b *Booking) Key() SlotKey {
	return SlotKey{TargetID: b.TargetID, SlotID: b.SlotID}
}
