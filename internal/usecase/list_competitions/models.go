package list_competitions

import (
	"time"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	"github.com/m04kA/SMC-RangeBooking/internal/service/availability"
)

// Request модель запроса на получение списка соревнований
type Request struct {
	Search string     // по названию и месту, без учета регистра
	From   *time.Time // соревнования, которые заканчиваются не раньше
	To     *time.Time // соревнования, которые начинаются не позже
	Status *domain.CompetitionStatus
	Actor  *domain.Actor // nil для анонимного участника
}

// Response модель ответа со списком соревнований
type Response struct {
	Competitions []Competition
}

// Competition карточка соревнования
type Competition struct {
	Competition   domain.Competition
	Status        domain.CompetitionStatus // эффективный статус
	UserAvailable int                      // доступно текущему участнику
	TotalSlots    int                      // сгенерировано слотов
	Level         availability.Level
}
