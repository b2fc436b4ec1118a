package schedule

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	"github.com/m04kA/SMC-RangeBooking/internal/service/eligibility"
	"github.com/m04kA/SMC-RangeBooking/pkg/types"
)

// Generator строит скелет расписания: мишени, даты и слоты без состояния бронирования
type Generator struct {
	rule            eligibility.Rule
	fitWithinWindow bool
}

// Option настройка генератора
type Option func(*Generator)

// WithFitWithinWindow требует, чтобы слот заканчивался не позже конца окна.
// По умолчанию слот выпускается, если он начинается до конца окна.
func WithFitWithinWindow() Option {
	return func(g *Generator) {
		g.fitWithinWindow = true
	}
}

// NewGenerator создает генератор слотов
func NewGenerator(rule eligibility.Rule, opts ...Option) *Generator {
	g := &Generator{rule: rule}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Layout сгенерированная вселенная слотов соревнования
type Layout struct {
	Targets []domain.Target
	Dates   []time.Time
	// Slots слоты каждой мишени, упорядоченные по дате, затем по времени
	Slots map[string][]domain.TimeSlot
}

// SlotCount общее количество слотов
func (l *Layout) SlotCount() int {
	total := 0
	for _, slots := range l.Slots {
		total += len(slots)
	}
	return total
}

// GenerateTimeSlots генерирует слоты одной мишени на одну дату.
// Слоты начинаются в startTime с шагом slotDuration, пока начало < endTime.
func (g *Generator) GenerateTimeSlots(
	targetID string,
	startTime, endTime types.TimeString,
	slotDuration int,
	date time.Time,
) ([]domain.TimeSlot, error) {
	if slotDuration <= 0 {
		return nil, fmt.Errorf("%w: slot duration must be positive, got %d", ErrInvalidSchedule, slotDuration)
	}

	start, err := startTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: start time: %v", ErrInvalidSchedule, err)
	}
	end, err := endTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: end time: %v", ErrInvalidSchedule, err)
	}
	if end <= start {
		return nil, fmt.Errorf("%w: end time %s is not after start time %s", ErrInvalidSchedule, endTime, startTime)
	}

	day := domain.DateOnly(date)
	slots := make([]domain.TimeSlot, 0, (end-start)/slotDuration+1)

	for current, index := start, 0; current < end; current, index = current+slotDuration, index+1 {
		if g.fitWithinWindow && current+slotDuration > end {
			break
		}

		at, err := types.FromMinutes(current)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}

		slots = append(slots, domain.TimeSlot{
			ID:             domain.SlotID(targetID, index, day),
			TargetID:       targetID,
			Index:          index,
			Time:           at,
			Date:           day,
			AllowedClasses: g.rule.AllowedClassesFor(day, at),
		})
	}

	return slots, nil
}

// Build валидирует соревнование и генерирует все его мишени и слоты
func (g *Generator) Build(c *domain.Competition) (*Layout, error) {
	if err := ValidateSchedule(c); err != nil {
		return nil, err
	}

	dates, err := GenerateDateRange(c.StartDate, c.EndDate)
	if err != nil {
		return nil, err
	}

	targets := GenerateTargets(c.ID, c.TargetCount)
	layout := &Layout{
		Targets: targets,
		Dates:   dates,
		Slots:   make(map[string][]domain.TimeSlot, len(targets)),
	}

	for _, target := range targets {
		var perTarget []domain.TimeSlot
		for _, d := range dates {
			slots, err := g.GenerateTimeSlots(target.ID, c.StartTime, c.EndTime, c.SlotDurationMinutes, d)
			if err != nil {
				return nil, err
			}
			perTarget = append(perTarget, slots...)
		}
		layout.Slots[target.ID] = perTarget
	}

	return layout, nil
}
