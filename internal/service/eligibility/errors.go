package eligibility

import "errors"

var (
	// ErrUnknownPolicy возвращается для неизвестной стратегии
	ErrUnknownPolicy = errors.New("eligibility: unknown policy")

	// ErrInvalidPreset возвращается для пустого пресета или неизвестного класса в нем
	ErrInvalidPreset = errors.New("eligibility: invalid preset")
)
