package lock_slot

import (
	"context"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	"github.com/m04kA/SMC-RangeBooking/internal/service/booking"
)

// HoldsService удержание слотов
type HoldsService interface {
	Lock(ctx context.Context, competitionID int64, slotID string, actor *domain.Actor) (*booking.SlotLock, error)
	Release(ctx context.Context, competitionID int64, slotID string, actor *domain.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
