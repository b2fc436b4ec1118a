package domain

import (
	"fmt"
	"strings"
)

// Class is a shooter classification. A shooter holds exactly one base class
// and any number of special classes.
type Class string

// Base classes
const (
	ClassNU  Class = "NU"
	ClassER  Class = "ER"
	ClassR   Class = "R"
	ClassJ   Class = "J"
	ClassEJ  Class = "EJ"
	Class1   Class = "1"
	Class2   Class = "2"
	Class3   Class = "3"
	Class4   Class = "4"
	Class5   Class = "5"
	ClassV55 Class = "v55"
	ClassV65 Class = "v65"
	ClassV75 Class = "v75"
)

// Special classes
const (
	ClassJEG   Class = "JEG"
	ClassKIK   Class = "KIK"
	ClassAA    Class = "Å"
	ClassHK416 Class = "HK416"
)

var baseClasses = []Class{
	ClassNU, ClassER, ClassR, ClassJ, ClassEJ,
	Class1, Class2, Class3, Class4, Class5,
	ClassV55, ClassV65, ClassV75,
}

var specialClasses = []Class{ClassJEG, ClassKIK, ClassAA, ClassHK416}

var (
	baseSet    = toSet(baseClasses)
	specialSet = toSet(specialClasses)
)

func toSet(classes []Class) map[Class]struct{} {
	set := make(map[Class]struct{}, len(classes))
	for _, c := range classes {
		set[c] = struct{}{}
	}
	return set
}

// BaseClasses returns the base classes in display order.
func BaseClasses() []Class {
	return append([]Class(nil), baseClasses...)
}

// SpecialClasses returns the special classes in display order.
func SpecialClasses() []Class {
	return append([]Class(nil), specialClasses...)
}

// AllClasses returns base classes followed by special classes.
func AllClasses() []Class {
	all := make([]Class, 0, len(baseClasses)+len(specialClasses))
	all = append(all, baseClasses...)
	return append(all, specialClasses...)
}

func IsValidBaseClass(c Class) bool {
	_, ok := baseSet[c]
	return ok
}

func IsValidSpecialClass(c Class) bool {
	_, ok := specialSet[c]
	return ok
}

// IsValidClass reports whether c belongs to the taxonomy at all.
func IsValidClass(c Class) bool {
	return IsValidBaseClass(c) || IsValidSpecialClass(c)
}

// ValidateClasses fails listing every class that is not part of the taxonomy.
func ValidateClasses(classes []Class) error {
	var unknown []string
	for _, c := range classes {
		if !IsValidClass(c) {
			unknown = append(unknown, string(c))
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownClass, strings.Join(unknown, ", "))
	}
	return nil
}

// ValidateEligibilitySet checks a shooter's classes: one base class plus
// special classes only.
func ValidateEligibilitySet(base Class, extra []Class) error {
	if !IsValidBaseClass(base) {
		return fmt.Errorf("%w: %q is not a base class", ErrInvalidEligibilitySet, base)
	}
	for _, c := range extra {
		if !IsValidSpecialClass(c) {
			return fmt.Errorf("%w: %q is not a special class", ErrInvalidEligibilitySet, c)
		}
	}
	return nil
}

// ParseClasses splits a comma separated list, trimming blanks.
func ParseClasses(raw string) []Class {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	classes := make([]Class, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			classes = append(classes, Class(p))
		}
	}
	return classes
}
