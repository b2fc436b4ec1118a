package eligibility

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	"github.com/m04kA/SMC-RangeBooking/pkg/types"
)

// Rule решает, какие классы допускаются на слот в заданные дату и время.
// nil означает отсутствие ограничений. Реализации обязаны быть чистыми функциями.
type Rule interface {
	AllowedClassesFor(date time.Time, at types.TimeString) []domain.Class
}

// RuleFunc адаптер функции к Rule
type RuleFunc func(date time.Time, at types.TimeString) []domain.Class

func (f RuleFunc) AllowedClassesFor(date time.Time, at types.TimeString) []domain.Class {
	return f(date, at)
}

// Policy стратегия выбора ограничений
type Policy string

const (
	// PolicySparse ограничивает примерно каждый двадцатый слот
	PolicySparse Policy = "sparse"
	// PolicyRotating ограничивает каждый слот одним из пресетов
	PolicyRotating Policy = "rotating"
	// PolicyOpen не ограничивает ничего
	PolicyOpen Policy = "open"
)

// sparseModulus доля ограниченных слотов для PolicySparse (1 из 20)
const sparseModulus = 20

// DefaultPresets наборы классов по умолчанию
func DefaultPresets() [][]domain.Class {
	return [][]domain.Class{
		{domain.ClassJEG},
		{domain.ClassHK416},
		{domain.ClassAA},
		{domain.ClassKIK},
	}
}

// PresetRule детерминированное правило на основе свертки даты и времени
type PresetRule struct {
	policy  Policy
	presets [][]domain.Class
}

// New создает правило. Пустые presets заменяются DefaultPresets.
func New(policy Policy, presets [][]domain.Class) (*PresetRule, error) {
	switch policy {
	case "":
		policy = PolicySparse
	case PolicySparse, PolicyRotating, PolicyOpen:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}

	if len(presets) == 0 {
		presets = DefaultPresets()
	}

	// Копируем и валидируем пресеты
	copied := make([][]domain.Class, 0, len(presets))
	for i, preset := range presets {
		if len(preset) == 0 {
			return nil, fmt.Errorf("%w: preset #%d is empty", ErrInvalidPreset, i)
		}
		if err := domain.ValidateClasses(preset); err != nil {
			return nil, fmt.Errorf("%w: preset #%d: %v", ErrInvalidPreset, i, err)
		}
		copied = append(copied, append([]domain.Class(nil), preset...))
	}

	return &PresetRule{policy: policy, presets: copied}, nil
}

// AllowedClassesFor возвращает копию выбранного пресета или nil
func (r *PresetRule) AllowedClassesFor(date time.Time, at types.TimeString) []domain.Class {
	seed := Seed(date, at)

	switch r.policy {
	case PolicyOpen:
		return nil
	case PolicySparse:
		if seed%sparseModulus != 0 {
			return nil
		}
	}

	preset := r.presets[seed%len(r.presets)]
	return append([]domain.Class(nil), preset...)
}

// Policy возвращает активную стратегию
func (r *PresetRule) Policy() Policy {
	return r.policy
}

// Seed сумма кодов символов строки "YYYY-MM-DD-HH:MM"
func Seed(date time.Time, at types.TimeString) int {
	key := date.Format(domain.DateFormat) + "-" + at.String()
	seed := 0
	for _, r := range key {
		seed += int(r)
	}
	return seed
}
