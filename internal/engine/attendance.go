package engine

import (
	"math"

	"github.com/kayfabe/promoter/internal/domain"
)

// Attendance is the projected gate for a show, bounded by venue capacity.
type Attendance struct {
	Count    int    `json:"count"`
	Degraded bool   `json:"degraded"`
	Reason   string `json:"reason,omitempty"`
}

// showTypeDraw returns the attendance multiplier for a show type.
func showTypeDraw(t domain.ShowType) float64 {
	switch t {
	case domain.ShowPayPerView:
		return 1.2
	case domain.ShowSpecialEvent:
		return 1.1
	case domain.ShowHouseShow:
		return 0.8
	default:
		return 1.0
	}
}

// ProjectAttendance models the gate from venue capacity and prestige,
// company popularity, show type and ticket price, with a ±10% random
// swing. The result is floored at 10% of capacity and capped at capacity.
//
// Fail-soft: a missing company resolves to half capacity; a missing venue
// leaves nothing to compute against and resolves to zero.
func (e *Engine) ProjectAttendance(show domain.ShowRecord, venue *domain.VenueSnapshot, company *domain.CompanySnapshot) Attendance {
	if venue == nil {
		return Attendance{Count: 0, Degraded: true, Reason: ReasonMissingVenue}
	}
	capacity := float64(venue.Capacity)
	if company == nil {
		return Attendance{Count: int(math.Floor(capacity * 0.5)), Degraded: true, Reason: ReasonMissingCompany}
	}

	base := capacity * (float64(company.Popularity) / 100)
	base *= showTypeDraw(show.ShowType)
	base *= float64(venue.Prestige) / 50
	base *= domain.Clamp(1-(float64(show.TicketPrice)-20)/100, 0.7, 1.3)
	base *= uniform(e.rand, 0.9, 1.1)

	floor := math.Floor(capacity * 0.1)
	if base < floor {
		base = floor
	}
	if base > capacity {
		base = capacity
	}
	return Attendance{Count: int(math.Floor(base))}
}
