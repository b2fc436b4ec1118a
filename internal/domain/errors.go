package domain

import "errors"

var (
	// ErrUnknownClass is returned for a class outside the taxonomy
	ErrUnknownClass = errors.New("domain: unknown class")

	// ErrInvalidEligibilitySet is returned when a shooter's classes are not one base plus specials
	ErrInvalidEligibilitySet = errors.New("domain: invalid eligibility set")
)
