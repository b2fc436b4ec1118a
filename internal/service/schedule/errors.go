package schedule

import "errors"

var (
	// ErrInvalidSchedule возвращается при некорректных параметрах расписания соревнования
	ErrInvalidSchedule = errors.New("schedule: invalid schedule")
)
