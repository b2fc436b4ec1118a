package lock_slot

import (
	"time"

	"github.com/m04kA/SMC-RangeBooking/internal/service/booking"
)

// LockResponse HTTP response model удержания
type LockResponse struct {
	CompetitionID int64     `json:"competitionId"`
	SlotID        string    `json:"slotId"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// FromSlotLock конвертирует удержание в HTTP response
func FromSlotLock(competitionID int64, lock *booking.SlotLock) *LockResponse {
	return &LockResponse{
		CompetitionID: competitionID,
		SlotID:        lock.SlotID,
		ExpiresAt:     lock.ExpiresAt.UTC(),
	}
}
