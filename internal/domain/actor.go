package domain

// Actor is the already authenticated caller. A nil *Actor is anonymous.
type Actor struct {
	ID        string
	Name      string
	Email     string
	IsAdmin   bool
	BaseClass Class
	Classes   []Class // special classes
}

// IsAuthenticated is safe on a nil receiver
func (a *Actor) IsAuthenticated() bool {
	return a != nil && a.ID != ""
}

// EligibilitySet returns the base class followed by the special classes.
// Anonymous actors hold no classes.
func (a *Actor) EligibilitySet() []Class {
	if !a.IsAuthenticated() {
		return nil
	}
	set := make([]Class, 0, len(a.Classes)+1)
	if a.BaseClass != "" {
		set = append(set, a.BaseClass)
	}
	for _, c := range a.Classes {
		if c != a.BaseClass {
			set = append(set, c)
		}
	}
	return set
}
