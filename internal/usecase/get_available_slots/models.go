package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	"github.com/m04kA/SMC-RangeBooking/internal/service/availability"
	"github.com/m04kA/SMC-RangeBooking/pkg/types"
)

// Request модель запроса на получение слотов соревнования
type Request struct {
	CompetitionID int64
	Actor         *domain.Actor // nil для анонимного участника
}

// Response модель ответа со слотами, сгруппированными по мишеням и сменам
type Response struct {
	Competition   domain.Competition
	Status        domain.CompetitionStatus
	Targets       []TargetSlots
	Relays        []Relay
	UserAvailable int // доступно текущему участнику
	TotalSlots    int
	Level         availability.Level
}

// TargetSlots слоты одной мишени
type TargetSlots struct {
	Target         domain.Target
	Slots          []Slot
	AvailableCount int
}

// Relay смена: одно время на все даты соревнования
type Relay struct {
	Time  types.TimeString
	Dates []RelayDate
}

// RelayDate смена в конкретный день, слоты по номеру мишени
type RelayDate struct {
	Date           time.Time
	Slots          []Slot
	AvailableCount int
	TotalCount     int
}

// Slot слот с точки зрения участника
type Slot struct {
	ID             string
	TargetID       string
	TargetNumber   int
	Date           time.Time
	Time           types.TimeString
	State          domain.SlotState
	Available      bool // участник может забронировать слот
	BookedByName   string
	BookedByClass  domain.Class
	LockedByMe     bool
	LockExpiresAt  *time.Time
	AllowedClasses []domain.Class // nil если слот без ограничений
}
