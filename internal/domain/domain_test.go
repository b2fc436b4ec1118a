package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassTaxonomy(t *testing.T) {
	t.Run("base classes", func(t *testing.T) {
		for _, c := range []Class{"NU", "ER", "R", "J", "EJ", "1", "2", "3", "4", "5", "v55", "v65", "v75"} {
			assert.True(t, IsValidBaseClass(c), c)
			assert.False(t, IsValidSpecialClass(c), c)
		}
	})

	t.Run("special classes", func(t *testing.T) {
		for _, c := range []Class{"JEG", "KIK", "Å", "HK416"} {
			assert.True(t, IsValidSpecialClass(c), c)
			assert.False(t, IsValidBaseClass(c), c)
		}
	})

	t.Run("unknown is neither", func(t *testing.T) {
		assert.False(t, IsValidClass("V55"))
		assert.False(t, IsValidClass(""))
	})

	t.Run("all classes keeps order", func(t *testing.T) {
		all := AllClasses()
		require.Len(t, all, 17)
		assert.Equal(t, ClassNU, all[0])
		assert.Equal(t, ClassHK416, all[16])
	})

	t.Run("returned slices are copies", func(t *testing.T) {
		b := BaseClasses()
		b[0] = "XX"
		assert.Equal(t, ClassNU, BaseClasses()[0])
	})
}

func TestValidateClasses(t *testing.T) {
	assert.NoError(t, ValidateClasses([]Class{"JEG", "3"}))

	err := ValidateClasses([]Class{"JEG", "foo", "bar"})
	require.ErrorIs(t, err, ErrUnknownClass)
	assert.Contains(t, err.Error(), "foo, bar")
}

func TestValidateEligibilitySet(t *testing.T) {
	assert.NoError(t, ValidateEligibilitySet("3", []Class{"JEG", "KIK"}))
	assert.ErrorIs(t, ValidateEligibilitySet("JEG", nil), ErrInvalidEligibilitySet)
	assert.ErrorIs(t, ValidateEligibilitySet("3", []Class{"4"}), ErrInvalidEligibilitySet)
}

func TestParseClasses(t *testing.T) {
	assert.Equal(t, []Class{"JEG", "Å"}, ParseClasses(" JEG, ,Å "))
	assert.Nil(t, ParseClasses("  "))
}

func TestCompetition_Capacity(t *testing.T) {
	c := &Competition{
		StartDate:           time.Date(2025, 8, 13, 0, 0, 0, 0, time.UTC),
		EndDate:             time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
		StartTime:           "09:00",
		EndTime:             "16:00",
		TargetCount:         10,
		SlotDurationMinutes: 45,
	}

	assert.Equal(t, 3, c.Days())
	window, err := c.WindowMinutes()
	require.NoError(t, err)
	assert.Equal(t, 420, window)

	// floor(3 * 7 * 10 * 60 / 45) = 280
	assert.Equal(t, 280, CalculateTotalSlots(c.Days(), window, c.TargetCount, c.SlotDurationMinutes))
	assert.Equal(t, 0, CalculateTotalSlots(0, window, 10, 45))
}

func TestCompetitionFilter_Matches(t *testing.T) {
	c := &Competition{
		Name:      "Samlagsstemne Felt",
		Location:  "Sunnfjord",
		StartDate: time.Date(2025, 8, 13, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
	}
	day := func(d int) *time.Time {
		v := time.Date(2025, 8, d, 0, 0, 0, 0, time.UTC)
		return &v
	}

	tests := []struct {
		name   string
		filter CompetitionFilter
		want   bool
	}{
		{name: "empty filter", filter: CompetitionFilter{}, want: true},
		{name: "search by name", filter: CompetitionFilter{Search: "felt"}, want: true},
		{name: "search by location", filter: CompetitionFilter{Search: "SUNNFJORD"}, want: true},
		{name: "search miss", filter: CompetitionFilter{Search: "toten"}, want: false},
		{name: "from inside range", filter: CompetitionFilter{From: day(15)}, want: true},
		{name: "from after end", filter: CompetitionFilter{From: day(16)}, want: false},
		{name: "to before start", filter: CompetitionFilter{To: day(12)}, want: false},
		{name: "to on start", filter: CompetitionFilter{To: day(13)}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(c))
		})
	}
}

func TestTimeSlot_StateAndAllows(t *testing.T) {
	date := time.Date(2025, 10, 11, 0, 0, 0, 0, time.UTC)
	slot := TimeSlot{ID: SlotID("5-target-2", 1, date), TargetID: "5-target-2"}

	assert.Equal(t, "5-target-2-slot-1-2025-10-11", slot.ID)
	assert.Equal(t, SlotFree, slot.State())
	assert.True(t, slot.Allows(nil))

	slot.IsLocked = true
	assert.Equal(t, SlotLocked, slot.State())
	slot.IsLocked, slot.IsBooked = false, true
	assert.Equal(t, SlotBooked, slot.State())

	restricted := TimeSlot{AllowedClasses: []Class{ClassJEG}}
	assert.False(t, restricted.Allows([]Class{"3"}))
	assert.True(t, restricted.Allows([]Class{"3", ClassJEG}))
	assert.False(t, restricted.Allows(nil))

	clone := restricted.Clone()
	clone.AllowedClasses[0] = ClassKIK
	assert.Equal(t, ClassJEG, restricted.AllowedClasses[0])
}

func TestActor_EligibilitySet(t *testing.T) {
	var anon *Actor
	assert.False(t, anon.IsAuthenticated())
	assert.Nil(t, anon.EligibilitySet())

	a := &Actor{ID: "u1", BaseClass: "3", Classes: []Class{"JEG", "3"}}
	assert.True(t, a.IsAuthenticated())
	assert.Equal(t, []Class{"3", "JEG"}, a.EligibilitySet())
}

func TestTargetID(t *testing.T) {
	assert.Equal(t, "3-target-10", TargetID(3, 10))
}
