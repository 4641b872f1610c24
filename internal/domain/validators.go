package domain

import (
	"fmt"
	"strings"
)

// ValidateAttribute checks a core attribute or popularity value.
func ValidateAttribute(name string, v int) error {
	if v < 1 || v > 100 {
		return ErrValidation(fmt.Sprintf("%s must be in [1,100], got %d", name, v))
	}
	return nil
}

// ValidateAttributes checks all four core attributes.
func ValidateAttributes(a Attributes) error {
	checks := []struct {
		name string
		v    int
	}{
		{"strength", a.Strength},
		{"agility", a.Agility},
		{"charisma", a.Charisma},
		{"technical", a.Technical},
	}
	for _, c := range checks {
		if err := ValidateAttribute(c.name, c.v); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks the style enum.
func ValidateStyle(s Style) error {
	switch s {
	case StyleTechnical, StyleHighFlyer, StylePowerhouse, StyleBrawler, StyleShowman, StyleAllRounder:
		return nil
	}
	return ErrValidation(fmt.Sprintf("unknown style %q", s))
}

// ValidatePlannedQuality checks a booked quality score.
func ValidatePlannedQuality(q float64) error {
	if q < 1 || q > 5 {
		return ErrValidation(fmt.Sprintf("planned quality must be in [1,5], got %.1f", q))
	}
	return nil
}

// ValidatePosition checks a card slot. Positions are 1-based and strictly
// positive; uniqueness across the card is the booking policy's job.
func ValidatePosition(pos int) error {
	if pos < 1 {
		return ErrValidation(fmt.Sprintf("position must be >= 1, got %d", pos))
	}
	return nil
}

// ValidateEmail performs a shallow shape check; deliverability is not our
// problem.
func ValidateEmail(email string) error {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return ErrValidation(fmt.Sprintf("invalid email %q", email))
	}
	return nil
}

// ValidateCapacity checks a venue capacity.
func ValidateCapacity(capacity int) error {
	if capacity <= 0 {
		return ErrValidation(fmt.Sprintf("capacity must be positive, got %d", capacity))
	}
	return nil
}
