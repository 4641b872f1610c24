package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/kayfabe/promoter/internal/domain"
	"github.com/stretchr/testify/assert"
)

func availableVenue() *domain.VenueSnapshot {
	return &domain.VenueSnapshot{
		ID:          uuid.New(),
		Name:        "Hammerstein Ballroom",
		Capacity:    2500,
		IsAvailable: true,
	}
}

func bookedMatch(pos int) domain.MatchRecord {
	return domain.MatchRecord{
		Position:       pos,
		MatchType:      domain.MatchSingles,
		Participants:   []domain.MatchParticipant{{WrestlerID: uuid.New()}},
		PlannedQuality: 3.0,
	}
}

func bookedSegment(pos int) domain.SegmentRecord {
	return domain.SegmentRecord{
		Position:       pos,
		SegmentType:    domain.SegmentPromo,
		PlannedQuality: 3.0,
	}
}

func TestEvaluateBookingAllowed(t *testing.T) {
	policy := DefaultBookingPolicy()
	show := domain.ShowRecord{TicketPrice: 25}

	eval := EvaluateBooking(policy, show, availableVenue())
	assert.True(t, eval.Allowed)
	assert.Empty(t, eval.Reason)
}

func TestEvaluateBookingPriceBounds(t *testing.T) {
	policy := DefaultBookingPolicy()
	venue := availableVenue()

	cases := []struct {
		price   int64
		allowed bool
	}{
		{4, false},
		{5, true},
		{500, true},
		{501, false},
	}
	for _, c := range cases {
		eval := EvaluateBooking(policy, domain.ShowRecord{TicketPrice: c.price}, venue)
		assert.Equal(t, c.allowed, eval.Allowed, "price %d", c.price)
	}
}

func TestEvaluateBookingVenueChecks(t *testing.T) {
	policy := DefaultBookingPolicy()
	show := domain.ShowRecord{TicketPrice: 25}

	eval := EvaluateBooking(policy, show, nil)
	assert.False(t, eval.Allowed)
	assert.Equal(t, "venue not found", eval.Reason)

	closed := availableVenue()
	closed.IsAvailable = false
	eval = EvaluateBooking(policy, show, closed)
	assert.False(t, eval.Allowed)
	assert.Contains(t, eval.Reason, "not available")
}

func TestEvaluateCardAllowed(t *testing.T) {
	policy := DefaultBookingPolicy()
	show := domain.ShowRecord{
		Matches:  []domain.MatchRecord{bookedMatch(1), bookedMatch(3)},
		Segments: []domain.SegmentRecord{bookedSegment(2)},
	}

	eval := EvaluateCard(policy, show)
	assert.True(t, eval.Allowed)
}

func TestEvaluateCardSlotLimit(t *testing.T) {
	policy := DefaultBookingPolicy()
	show := domain.ShowRecord{}
	for i := 1; i <= 21; i++ {
		show.Matches = append(show.Matches, bookedMatch(i))
	}

	eval := EvaluateCard(policy, show)
	assert.False(t, eval.Allowed)
	assert.Contains(t, eval.Reason, "21 slots")
}

func TestEvaluateCardDuplicatePositionAcrossKinds(t *testing.T) {
	policy := DefaultBookingPolicy()

	// matches and segments share one position space
	show := domain.ShowRecord{
		Matches:  []domain.MatchRecord{bookedMatch(1)},
		Segments: []domain.SegmentRecord{bookedSegment(1)},
	}
	eval := EvaluateCard(policy, show)
	assert.False(t, eval.Allowed)
	assert.Contains(t, eval.Reason, "duplicate card position 1")
}

func TestEvaluateCardZeroPosition(t *testing.T) {
	policy := DefaultBookingPolicy()
	show := domain.ShowRecord{Matches: []domain.MatchRecord{bookedMatch(0)}}

	eval := EvaluateCard(policy, show)
	assert.False(t, eval.Allowed)
	assert.Contains(t, eval.Reason, "must be >= 1")
}

func TestEvaluateCardEmptyMatch(t *testing.T) {
	policy := DefaultBookingPolicy()
	m := bookedMatch(1)
	m.Participants = nil
	show := domain.ShowRecord{Matches: []domain.MatchRecord{m}}

	eval := EvaluateCard(policy, show)
	assert.False(t, eval.Allowed)
	assert.Contains(t, eval.Reason, "no participants")
}

func TestEvaluateCardPlannedQualityRange(t *testing.T) {
	policy := DefaultBookingPolicy()
	s := bookedSegment(1)
	s.PlannedQuality = 5.5
	show := domain.ShowRecord{Segments: []domain.SegmentRecord{s}}

	eval := EvaluateCard(policy, show)
	assert.False(t, eval.Allowed)
	assert.Contains(t, eval.Reason, "planned quality")
}
