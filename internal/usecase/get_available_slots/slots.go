package get_available_slots

import (
	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	"github.com/m04kA/SMC-RangeBooking/internal/service/availability"
)

// toSlot конвертирует запись представления в слот ответа.
// Чужие блокировки не раскрывают участника, только срок.
func toSlot(entry availability.Entry, actor *domain.Actor) Slot {
	s := entry.Slot
	slot := Slot{
		ID:             s.ID,
		TargetID:       s.TargetID,
		TargetNumber:   entry.Target.Number,
		Date:           s.Date,
		Time:           s.Time,
		State:          s.State(),
		Available:      entry.Available,
		BookedByName:   s.BookedByName,
		BookedByClass:  s.BookedByClass,
		AllowedClasses: s.AllowedClasses,
	}

	if s.IsLocked {
		expires := s.LockExpiresAt
		slot.LockExpiresAt = &expires
		slot.LockedByMe = actor.IsAuthenticated() && s.LockedBy == actor.ID
	}

	return slot
}

// toTargets конвертирует группировку по мишеням
func toTargets(groups []availability.TargetGroup, actor *domain.Actor) []TargetSlots {
	result := make([]TargetSlots, 0, len(groups))
	for _, g := range groups {
		slots := make([]Slot, 0, len(g.Entries))
		for _, e := range g.Entries {
			slots = append(slots, toSlot(e, actor))
		}
		result = append(result, TargetSlots{
			Target:         g.Target,
			Slots:          slots,
			AvailableCount: g.AvailableCount,
		})
	}
	return result
}

// toRelays конвертирует группировку по времени и дате
func toRelays(groups []availability.TimeGroup, actor *domain.Actor) []Relay {
	result := make([]Relay, 0, len(groups))
	for _, g := range groups {
		relay := Relay{Time: g.Time, Dates: make([]RelayDate, 0, len(g.Dates))}
		for _, d := range g.Dates {
			slots := make([]Slot, 0, len(d.Entries))
			for _, e := range d.Entries {
				slots = append(slots, toSlot(e, actor))
			}
			relay.Dates = append(relay.Dates, RelayDate{
				Date:           d.Date,
				Slots:          slots,
				AvailableCount: d.AvailableCount,
				TotalCount:     d.TotalCount,
			})
		}
		result = append(result, relay)
	}
	return result
}
