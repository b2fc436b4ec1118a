package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	"github.com/m04kA/SMC-RangeBooking/pkg/types"
)

// Level grade of availability shown on competition cards
type Level string

const (
	LevelNone Level = "none"
	LevelLow  Level = "low"
	LevelGood Level = "good"
)

// IsAvailableTo reports whether a slot can be taken by a holder of classes.
// Anonymous callers see unrestricted free slots only.
func IsAvailableTo(slot *domain.TimeSlot, classes []domain.Class, authenticated bool) bool {
	if slot.IsBooked || slot.IsLocked {
		return false
	}
	if !slot.IsRestricted() {
		return true
	}
	if !authenticated {
		return false
	}
	return slot.Allows(classes)
}

// IsAvailableFor is IsAvailableTo for an actor; nil is anonymous
func IsAvailableFor(slot *domain.TimeSlot, actor *domain.Actor) bool {
	return IsAvailableTo(slot, actor.EligibilitySet(), actor.IsAuthenticated())
}

// LevelFor grades available out of total
func LevelFor(available, total int) Level {
	if available <= 0 || total <= 0 {
		return LevelNone
	}
	if available*100 > total*domain.AvailabilityGoodPercent {
		return LevelGood
	}
	return LevelLow
}

// Entry a slot as seen by one actor
type Entry struct {
	Target    domain.Target
	Slot      domain.TimeSlot
	Available bool
}

// TargetGroup all slots of one target in date then time order
type TargetGroup struct {
	Target         domain.Target
	Entries        []Entry
	AvailableCount int
	TotalCount     int
}

// DateGroup one relay: the same time on one date across every target
type DateGroup struct {
	Date           time.Time
	Entries        []Entry // ordered by target number
	AvailableCount int
	TotalCount     int
}

// TimeGroup all dates sharing a clock time
type TimeGroup struct {
	Time  types.TimeString
	Dates []DateGroup
}

// View availability of a competition for one actor
type View struct {
	ByTarget      []TargetGroup
	ByTime        []TimeGroup
	UserAvailable int
	TotalSlots    int
	Level         Level
}

// Summary counts without groupings, used by listings
type Summary struct {
	UserAvailable int
	TotalSlots    int
	Level         Level
}

// Build derives the actor's view from current slot state. Views are never cached.
func Build(
	targets []domain.Target,
	dates []time.Time,
	slotsByTarget map[string][]domain.TimeSlot,
	actor *domain.Actor,
) *View {
	ordered := append([]domain.Target(nil), targets...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Number < ordered[j].Number })

	dateOrder := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		dateOrder[domain.DateOnly(d)] = i
	}

	classes := actor.EligibilitySet()
	authenticated := actor.IsAuthenticated()

	view := &View{ByTarget: make([]TargetGroup, 0, len(ordered))}
	relays := make(map[types.TimeString]map[time.Time]*DateGroup)

	for _, target := range ordered {
		group := TargetGroup{Target: target}

		for _, slot := range slotsByTarget[target.ID] {
			entry := Entry{
				Target:    target,
				Slot:      slot,
				Available: IsAvailableTo(&slot, classes, authenticated),
			}

			group.Entries = append(group.Entries, entry)
			group.TotalCount++

			byDate, ok := relays[slot.Time]
			if !ok {
				byDate = make(map[time.Time]*DateGroup)
				relays[slot.Time] = byDate
			}
			day := domain.DateOnly(slot.Date)
			relay, ok := byDate[day]
			if !ok {
				relay = &DateGroup{Date: day}
				byDate[day] = relay
			}
			relay.Entries = append(relay.Entries, entry)
			relay.TotalCount++

			if entry.Available {
				group.AvailableCount++
				relay.AvailableCount++
			}
		}

		view.ByTarget = append(view.ByTarget, group)
		view.UserAvailable += group.AvailableCount
		view.TotalSlots += group.TotalCount
	}

	times := make([]types.TimeString, 0, len(relays))
	for at := range relays {
		times = append(times, at)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].IsBefore(times[j]) })

	view.ByTime = make([]TimeGroup, 0, len(times))
	for _, at := range times {
		tg := TimeGroup{Time: at}
		for _, relay := range relays[at] {
			tg.Dates = append(tg.Dates, *relay)
		}
		sort.Slice(tg.Dates, func(i, j int) bool {
			oi, okI := dateOrder[tg.Dates[i].Date]
			oj, okJ := dateOrder[tg.Dates[j].Date]
			if okI && okJ {
				return oi < oj
			}
			return tg.Dates[i].Date.Before(tg.Dates[j].Date)
		})
		view.ByTime = append(view.ByTime, tg)
	}

	view.Level = LevelFor(view.UserAvailable, view.TotalSlots)
	return view
}

// Summarize counts available slots without building groups
func Summarize(slotsByTarget map[string][]domain.TimeSlot, actor *domain.Actor) Summary {
	classes := actor.EligibilitySet()
	authenticated := actor.IsAuthenticated()

	var s Summary
	for _, slots := range slotsByTarget {
		for i := range slots {
			s.TotalSlots++
			if IsAvailableTo(&slots[i], classes, authenticated) {
				s.UserAvailable++
			}
		}
	}
	s.Level = LevelFor(s.UserAvailable, s.TotalSlots)
	return s
}
