package policy

import (
	"fmt"

	"github.com/kayfabe/promoter/internal/domain"
)

// BookingPolicy defines the limits a show booking must respect.
type BookingPolicy struct {
	MinTicketPrice int64 `json:"min_ticket_price"`
	MaxTicketPrice int64 `json:"max_ticket_price"`
	MaxCardSlots   int   `json:"max_card_slots"`
}

// DefaultBookingPolicy returns the standard booking limits.
func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{
		MinTicketPrice: 5,
		MaxTicketPrice: 500,
		MaxCardSlots:   20,
	}
}

// BookingEvaluation holds the result of a booking check.
type BookingEvaluation struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

func denied(format string, args ...interface{}) BookingEvaluation {
	return BookingEvaluation{Allowed: false, Reason: fmt.Sprintf(format, args...)}
}

// EvaluateBooking checks a show booking against the policy: price bounds
// and venue availability. Card structure is checked separately since the
// card changes after booking.
func EvaluateBooking(policy BookingPolicy, show domain.ShowRecord, venue *domain.VenueSnapshot) BookingEvaluation {
	if show.TicketPrice < policy.MinTicketPrice || show.TicketPrice > policy.MaxTicketPrice {
		return denied("ticket price %d outside [%d,%d]", show.TicketPrice, policy.MinTicketPrice, policy.MaxTicketPrice)
	}
	if venue == nil {
		return denied("venue not found")
	}
	if !venue.IsAvailable {
		return denied("venue %s is not available", venue.Name)
	}
	return BookingEvaluation{Allowed: true}
}

// EvaluateCard validates a show's card structure: positions strictly
// positive and unique across matches and segments together, at least one
// participant per match, planned qualities in range.
func EvaluateCard(policy BookingPolicy, show domain.ShowRecord) BookingEvaluation {
	slots := len(show.Matches) + len(show.Segments)
	if policy.MaxCardSlots > 0 && slots > policy.MaxCardSlots {
		return denied("card has %d slots, maximum is %d", slots, policy.MaxCardSlots)
	}

	positions := make(map[int]bool, slots)
	claim := func(pos int) *BookingEvaluation {
		if err := domain.ValidatePosition(pos); err != nil {
			e := denied("%v", err)
			return &e
		}
		if positions[pos] {
			e := denied("duplicate card position %d", pos)
			return &e
		}
		positions[pos] = true
		return nil
	}

	for _, m := range show.Matches {
		if e := claim(m.Position); e != nil {
			return *e
		}
		if len(m.Participants) == 0 {
			return denied("match at position %d has no participants", m.Position)
		}
		if err := domain.ValidatePlannedQuality(m.PlannedQuality); err != nil {
			return denied("match at position %d: %v", m.Position, err)
		}
	}
	for _, s := range show.Segments {
		if e := claim(s.Position); e != nil {
			return *e
		}
		if err := domain.ValidatePlannedQuality(s.PlannedQuality); err != nil {
			return denied("segment at position %d: %v", s.Position, err)
		}
	}

	return BookingEvaluation{Allowed: true}
}
