package engine

import (
	"testing"

	"github.com/kayfabe/promoter/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestProjectAttendanceCappedAtCapacity(t *testing.T) {
	e := pinnedEngine()
	show := domain.ShowRecord{ShowType: domain.ShowPayPerView, TicketPrice: 50}
	venue := &domain.VenueSnapshot{Capacity: 20000, Prestige: 95}
	company := &domain.CompanySnapshot{Popularity: 80}

	// 20000 * 0.8 * 1.2 * 1.9 * 0.7 * 1.0 = 25536 -> capped at capacity
	att := e.ProjectAttendance(show, venue, company)
	assert.Equal(t, 20000, att.Count)
	assert.False(t, att.Degraded)
}

func TestProjectAttendanceNominal(t *testing.T) {
	e := pinnedEngine()
	show := domain.ShowRecord{ShowType: domain.ShowWeeklyTV, TicketPrice: 20}
	venue := &domain.VenueSnapshot{Capacity: 1000, Prestige: 50}
	company := &domain.CompanySnapshot{Popularity: 50}

	// 1000 * 0.5 * 1.0 * 1.0 * 1.0 * 1.0 = 500
	att := e.ProjectAttendance(show, venue, company)
	assert.Equal(t, 500, att.Count)
}

func TestProjectAttendanceFlooredAtTenPercent(t *testing.T) {
	e := pinnedEngine()
	show := domain.ShowRecord{ShowType: domain.ShowHouseShow, TicketPrice: 20}
	venue := &domain.VenueSnapshot{Capacity: 1000, Prestige: 25}
	company := &domain.CompanySnapshot{Popularity: 10}

	// 1000 * 0.1 * 0.8 * 0.5 = 40, floored at 100
	att := e.ProjectAttendance(show, venue, company)
	assert.Equal(t, 100, att.Count)
}

func TestProjectAttendancePriceFactorClamped(t *testing.T) {
	e := pinnedEngine()
	venue := &domain.VenueSnapshot{Capacity: 10000, Prestige: 50}
	company := &domain.CompanySnapshot{Popularity: 100}

	// price 200: raw factor 1-(200-20)/100 = -0.8, clamped to 0.7
	expensive := e.ProjectAttendance(domain.ShowRecord{ShowType: domain.ShowWeeklyTV, TicketPrice: 200}, venue, company)
	assert.Equal(t, 7000, expensive.Count)

	// free show: raw factor 1.2, within [0.7, 1.3] -> capped at capacity
	free := e.ProjectAttendance(domain.ShowRecord{ShowType: domain.ShowWeeklyTV, TicketPrice: 0}, venue, company)
	assert.Equal(t, 10000, free.Count)
}

func TestProjectAttendanceMissingVenue(t *testing.T) {
	e := pinnedEngine()
	att := e.ProjectAttendance(domain.ShowRecord{}, nil, &domain.CompanySnapshot{Popularity: 50})
	assert.Equal(t, 0, att.Count)
	assert.True(t, att.Degraded)
	assert.Equal(t, ReasonMissingVenue, att.Reason)
}

func TestProjectAttendanceMissingCompany(t *testing.T) {
	e := pinnedEngine()
	att := e.ProjectAttendance(domain.ShowRecord{}, &domain.VenueSnapshot{Capacity: 5000, Prestige: 50}, nil)
	assert.Equal(t, 2500, att.Count)
	assert.True(t, att.Degraded)
	assert.Equal(t, ReasonMissingCompany, att.Reason)
}
