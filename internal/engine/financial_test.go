package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/kayfabe/promoter/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolveFinancesPinned(t *testing.T) {
	e := pinnedEngine()
	show := domain.ShowRecord{ShowType: domain.ShowHouseShow, TicketPrice: 20}
	venue := &domain.VenueSnapshot{Capacity: 2000, RentalCost: 5000}

	a := domain.WrestlerSnapshot{ID: uuid.New(), Salary: 1000}
	b := domain.WrestlerSnapshot{ID: uuid.New(), Salary: 2000}

	fin := e.ResolveFinances(show, venue, 1000, []domain.WrestlerSnapshot{a, b})
	assert.Equal(t, int64(20000), fin.TicketRevenue)
	// per-head merch pinned at U(5,15) midpoint = 10
	assert.Equal(t, int64(10000), fin.MerchandiseRevenue)
	assert.Equal(t, int64(5000), fin.VenueRentalCost)
	assert.Equal(t, int64(5000), fin.ProductionCost)
	assert.Equal(t, int64(3000), fin.TalentCost)
	assert.Equal(t, int64(17000), fin.Profit)
	assert.False(t, fin.Degraded)
}

func TestResolveFinancesDeduplicatesTalent(t *testing.T) {
	e := pinnedEngine()
	w := domain.WrestlerSnapshot{ID: uuid.New(), Salary: 4000}

	// same wrestler booked in two matches counts once
	fin := e.ResolveFinances(
		domain.ShowRecord{ShowType: domain.ShowWeeklyTV},
		&domain.VenueSnapshot{Capacity: 1000},
		0,
		[]domain.WrestlerSnapshot{w, w},
	)
	assert.Equal(t, int64(4000), fin.TalentCost)
}

func TestResolveFinancesProductionTiers(t *testing.T) {
	e := pinnedEngine()
	venue := &domain.VenueSnapshot{Capacity: 1000}

	cases := []struct {
		showType domain.ShowType
		want     int64
	}{
		{domain.ShowPayPerView, 50000},
		{domain.ShowSpecialEvent, 25000},
		{domain.ShowWeeklyTV, 15000},
		{domain.ShowHouseShow, 5000},
	}
	for _, c := range cases {
		fin := e.ResolveFinances(domain.ShowRecord{ShowType: c.showType}, venue, 0, nil)
		assert.Equal(t, c.want, fin.ProductionCost, "show type %s", c.showType)
	}
}

func TestResolveFinancesMissingVenueZeroStatement(t *testing.T) {
	e := pinnedEngine()
	fin := e.ResolveFinances(domain.ShowRecord{TicketPrice: 50}, nil, 500, nil)
	assert.True(t, fin.Degraded)
	assert.Equal(t, ReasonMissingVenue, fin.Reason)
	assert.Equal(t, int64(0), fin.TicketRevenue)
	assert.Equal(t, int64(0), fin.Profit)
}
