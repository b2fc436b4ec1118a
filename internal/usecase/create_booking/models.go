package create_booking

import (
	"time"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	"github.com/m04kA/SMC-RangeBooking/pkg/types"
)

// SlotRef адрес слота в запросе
type SlotRef struct {
	TargetID string
	SlotID   string
}

// Request модель запроса на бронирование одного или нескольких слотов
type Request struct {
	CompetitionID int64
	Actor         *domain.Actor // кто бронирует
	Slots         []SlotRef
	BookerName    string       // на чье имя бронь, по умолчанию имя участника
	BookerClass   domain.Class // класс стрелка, по умолчанию базовый класс участника
}

// Response модель ответа с забронированными слотами
type Response struct {
	CompetitionID int64
	Slots         []BookedSlot
}

// BookedSlot забронированный слот
type BookedSlot struct {
	TargetID    string
	SlotID      string
	Date        time.Time
	Time        types.TimeString
	BookerName  string
	BookerClass domain.Class
}
