package booking

import (
	"time"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
)

// BookRequest запрос на бронирование одного слота
type BookRequest struct {
	SlotID      string
	ActorID     string       // кто бронирует (владелец блокировки)
	BookerName  string       // на чье имя бронь, может отличаться от актора
	BookerClass domain.Class // класс, по которому проверяется допуск
}

// BookManyRequest запрос на бронирование нескольких слотов "все или ничего"
type BookManyRequest struct {
	Keys        []domain.SlotKey
	ActorID     string
	BookerName  string
	BookerClass domain.Class
}

// SlotLock удержание слота участником до ExpiresAt
type SlotLock struct {
	SlotID    string
	ActorID   string
	ExpiresAt time.Time
}

// ChangeKind вид изменения слотов
type ChangeKind string

const (
	ChangeBooked   ChangeKind = "booked"
	ChangeLocked   ChangeKind = "locked"
	ChangeReleased ChangeKind = "released"
	ChangeExpired  ChangeKind = "expired"
	ChangeRestored ChangeKind = "restored"
)

// Change уведомление об изменении состояния слотов
type Change struct {
	CompetitionID int64
	Kind          ChangeKind
	Slots         []domain.TimeSlot
	Bookings      []domain.Booking // заполняется для ChangeBooked и ChangeRestored
	Unbooked      int              // слотов без брони после изменения
}
