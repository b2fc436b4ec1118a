package domain

import "time"

// Default configuration values
const (
	DefaultLockTTL             = 5 * time.Minute
	DefaultSweepInterval       = 30 * time.Second
	DefaultSlotDurationMinutes = 30
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MinTargetCount         = 1
	MaxTargetCount         = 100
	MaxBookerNameLength    = 100
	MaxSlotsPerBooking     = 50
)

// AvailabilityGoodPercent is the share of available slots above which a
// competition card shows "good" availability
const AvailabilityGoodPercent = 25

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
