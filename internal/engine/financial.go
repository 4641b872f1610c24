package engine

import (
	"math"

	"github.com/google/uuid"
	"github.com/kayfabe/promoter/internal/domain"
)

// Production cost tiers by show type, in whole currency units.
const (
	productionPayPerView   = 50000
	productionSpecialEvent = 25000
	productionWeeklyTV     = 15000
	productionHouseShow    = 5000
)

// FinancialStatement is the profit/loss result for a show.
type FinancialStatement struct {
	domain.FinancialBlock
	Degraded bool   `json:"degraded"`
	Reason   string `json:"reason,omitempty"`
}

func productionCost(t domain.ShowType) int64 {
	switch t {
	case domain.ShowPayPerView:
		return productionPayPerView
	case domain.ShowSpecialEvent:
		return productionSpecialEvent
	case domain.ShowWeeklyTV:
		return productionWeeklyTV
	default:
		return productionHouseShow
	}
}

// ResolveFinances computes the full statement from resolved attendance,
// ticket price, a per-attendee merchandise draw, venue rental, the
// production tier and de-duplicated talent salaries.
//
// Fail-soft: with no venue the statement degrades to all zeros rather
// than aborting show completion.
func (e *Engine) ResolveFinances(show domain.ShowRecord, venue *domain.VenueSnapshot, attendance int, talent []domain.WrestlerSnapshot) FinancialStatement {
	if venue == nil {
		return FinancialStatement{Degraded: true, Reason: ReasonMissingVenue}
	}

	perHead := uniform(e.rand, 5, 15)

	var talentCost int64
	seen := make(map[uuid.UUID]bool, len(talent))
	for _, w := range talent {
		if seen[w.ID] {
			continue
		}
		seen[w.ID] = true
		talentCost += w.Salary
	}

	fin := domain.FinancialBlock{
		Attendance:         attendance,
		TicketRevenue:      int64(attendance) * show.TicketPrice,
		MerchandiseRevenue: int64(math.Floor(float64(attendance) * perHead)),
		VenueRentalCost:    venue.RentalCost,
		ProductionCost:     productionCost(show.ShowType),
		TalentCost:         talentCost,
	}
	fin.Profit = (fin.TicketRevenue + fin.MerchandiseRevenue) -
		(fin.VenueRentalCost + fin.ProductionCost + fin.TalentCost)

	return FinancialStatement{FinancialBlock: fin}
}
