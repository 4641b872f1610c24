package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/kayfabe/promoter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pinnedCompletionFixture() (*domain.ShowRecord, CompletionInput) {
	a := domain.WrestlerSnapshot{
		ID:         uuid.New(),
		Popularity: 80,
		Salary:     1000,
		Attributes: domain.Attributes{Strength: 60, Agility: 70, Charisma: 80, Technical: 90},
	}
	b := a
	b.ID = uuid.New()
	c := domain.WrestlerSnapshot{
		ID:         uuid.New(),
		Salary:     1000,
		Attributes: domain.Attributes{Charisma: 75},
	}

	show := &domain.ShowRecord{
		ID:          uuid.New(),
		Status:      domain.ShowInProgress,
		ShowType:    domain.ShowWeeklyTV,
		TicketPrice: 20,
		Matches: []domain.MatchRecord{{
			ID:        uuid.New(),
			Position:  1,
			MatchType: domain.MatchSingles,
			Participants: []domain.MatchParticipant{
				{WrestlerID: a.ID, IsWinner: true},
				{WrestlerID: b.ID},
			},
		}},
		Segments: []domain.SegmentRecord{{
			ID:             uuid.New(),
			Position:       2,
			SegmentType:    domain.SegmentPromo,
			PlannedQuality: 3.0,
			Participants:   []uuid.UUID{c.ID},
		}},
	}

	in := CompletionInput{
		Venue:   &domain.VenueSnapshot{ID: uuid.New(), Capacity: 1000, Prestige: 50, RentalCost: 5000},
		Company: &domain.CompanySnapshot{ID: uuid.New(), Popularity: 50, Money: 100000},
		Wrestlers: map[uuid.UUID]domain.WrestlerSnapshot{
			a.ID: a, b.ID: b, c.ID: c,
		},
	}
	return show, in
}

func TestCompleteShowPinned(t *testing.T) {
	e := pinnedEngine()
	show, in := pinnedCompletionFixture()

	outcome, err := e.CompleteShow(show, in)
	require.NoError(t, err)
	assert.Empty(t, outcome.Degraded)

	// match: (80/20 + 77/20)/2 + 0.1 = 4.0; segment: 3 + (75-50)/25 = 4.0
	require.NotNil(t, show.Matches[0].ActualQuality)
	assert.Equal(t, 4.0, *show.Matches[0].ActualQuality)
	assert.Equal(t, 2.0, *show.Matches[0].PopularityImpact)
	require.NotNil(t, show.Segments[0].ActualQuality)
	assert.Equal(t, 4.0, *show.Segments[0].ActualQuality)
	assert.Equal(t, 1.5, *show.Segments[0].PopularityImpact)

	// weights: match 1.0, segment 2*0.5 -> overall 4.0
	assert.Equal(t, 4.0, show.OverallRating)
	assert.Equal(t, 4.0, show.CriticRating)
	assert.Equal(t, 80, show.AudienceSatisfaction)

	// gate: 1000 * 0.5 = 500
	assert.Equal(t, 500, show.Attendance)
	assert.Equal(t, int64(10000), show.TicketRevenue)
	assert.Equal(t, int64(5000), show.MerchandiseRevenue)
	assert.Equal(t, int64(5000), show.VenueRentalCost)
	assert.Equal(t, int64(15000), show.ProductionCost)
	assert.Equal(t, int64(3000), show.TalentCost)
	assert.Equal(t, int64(-8000), show.Profit)

	assert.Equal(t, domain.ShowCompleted, show.Status)

	// company: pop 50 + round((4-3)*2) = 52, money 100000 - 8000
	assert.Equal(t, 52, outcome.CompanyPopularity)
	assert.Equal(t, int64(92000), outcome.CompanyMoney)
}

// flatWrestler pins every attribute and popularity to v, so a singles
// match rates exactly v/20 + position/10 under a pinned source.
func flatWrestler(v int) domain.WrestlerSnapshot {
	return domain.WrestlerSnapshot{
		ID:         uuid.New(),
		Popularity: v,
		Salary:     1000,
		Attributes: domain.Attributes{Strength: v, Agility: v, Charisma: v, Technical: v},
	}
}

func singlesMatch(pos int, w domain.WrestlerSnapshot) domain.MatchRecord {
	return domain.MatchRecord{
		ID:           uuid.New(),
		Position:     pos,
		MatchType:    domain.MatchSingles,
		Participants: []domain.MatchParticipant{{WrestlerID: w.ID, IsWinner: true}},
	}
}

func TestCompleteShowPositionWeightedRating(t *testing.T) {
	e := pinnedEngine()
	opener, midcard, mainEvent := flatWrestler(58), flatWrestler(76), flatWrestler(94)

	show := &domain.ShowRecord{
		ID:          uuid.New(),
		Status:      domain.ShowInProgress,
		ShowType:    domain.ShowWeeklyTV,
		TicketPrice: 20,
		Matches: []domain.MatchRecord{
			singlesMatch(1, opener),
			singlesMatch(2, midcard),
			singlesMatch(3, mainEvent),
		},
	}
	in := CompletionInput{
		Venue:   &domain.VenueSnapshot{ID: uuid.New(), Capacity: 1000, Prestige: 50, RentalCost: 5000},
		Company: &domain.CompanySnapshot{ID: uuid.New(), Popularity: 50, Money: 100000},
		Wrestlers: map[uuid.UUID]domain.WrestlerSnapshot{
			opener.ID: opener, midcard.ID: midcard, mainEvent.ID: mainEvent,
		},
	}

	_, err := e.CompleteShow(show, in)
	require.NoError(t, err)

	require.NotNil(t, show.Matches[0].ActualQuality)
	assert.Equal(t, 3.0, *show.Matches[0].ActualQuality)
	assert.Equal(t, 4.0, *show.Matches[1].ActualQuality)
	assert.Equal(t, 5.0, *show.Matches[2].ActualQuality)

	// position-weighted: (3*1 + 4*2 + 5*3) / 6 = 4.333; a plain mean
	// would give 4.0
	assert.Equal(t, 4.3, show.OverallRating)
	assert.Equal(t, 4.3, show.CriticRating)
	assert.Equal(t, 87, show.AudienceSatisfaction)
}

func TestCompleteShowSegmentHalfWeight(t *testing.T) {
	e := pinnedEngine()
	opener := flatWrestler(58)

	show := &domain.ShowRecord{
		ID:          uuid.New(),
		Status:      domain.ShowInProgress,
		ShowType:    domain.ShowWeeklyTV,
		TicketPrice: 20,
		Matches:     []domain.MatchRecord{singlesMatch(1, opener)},
		Segments: []domain.SegmentRecord{{
			ID:             uuid.New(),
			Position:       4,
			SegmentType:    domain.SegmentAngle,
			PlannedQuality: 5.0,
		}},
	}
	in := CompletionInput{
		Venue:     &domain.VenueSnapshot{ID: uuid.New(), Capacity: 1000, Prestige: 50, RentalCost: 5000},
		Company:   &domain.CompanySnapshot{ID: uuid.New(), Popularity: 50, Money: 100000},
		Wrestlers: map[uuid.UUID]domain.WrestlerSnapshot{opener.ID: opener},
	}

	outcome, err := e.CompleteShow(show, in)
	require.NoError(t, err)
	assert.Empty(t, outcome.Degraded)

	// segment at position 4 weighs 2.0, not 4.0: (3*1 + 5*2) / 3 = 4.333
	assert.Equal(t, 3.0, *show.Matches[0].ActualQuality)
	assert.Equal(t, 5.0, *show.Segments[0].ActualQuality)
	assert.Equal(t, 4.3, show.OverallRating)
}

func TestCompleteShowRejectsWrongStatus(t *testing.T) {
	e := pinnedEngine()

	for _, status := range []domain.ShowStatus{
		domain.ShowDraft, domain.ShowScheduled, domain.ShowCompleted, domain.ShowCancelled,
	} {
		show, in := pinnedCompletionFixture()
		show.Status = status

		_, err := e.CompleteShow(show, in)
		require.Error(t, err, "status %s", status)

		appErr, ok := err.(*domain.AppError)
		require.True(t, ok)
		assert.Equal(t, "INVALID_TRANSITION", appErr.Code)
		assert.Equal(t, status, show.Status, "rejected show must be untouched")
	}
}

func TestCompleteShowEmptyCardDefaults(t *testing.T) {
	e := pinnedEngine()
	show, in := pinnedCompletionFixture()
	show.Matches = nil
	show.Segments = nil

	outcome, err := e.CompleteShow(show, in)
	require.NoError(t, err)

	// zero weight -> neutral 3.0, no popularity movement
	assert.Equal(t, 3.0, show.OverallRating)
	assert.Equal(t, 60, show.AudienceSatisfaction)
	assert.Equal(t, 50, outcome.CompanyPopularity)
}

func TestCompleteShowDegradedInputs(t *testing.T) {
	e := pinnedEngine()
	show, in := pinnedCompletionFixture()
	in.Venue = nil
	in.Company = nil
	in.Wrestlers = nil

	outcome, err := e.CompleteShow(show, in)
	require.NoError(t, err)

	assert.Equal(t, domain.ShowCompleted, show.Status)
	assert.Equal(t, 0, show.Attendance)
	assert.Equal(t, int64(0), show.Profit)
	assert.Contains(t, outcome.Degraded, ReasonNoParticipants)
	assert.Contains(t, outcome.Degraded, ReasonMissingVenue)

	// unresolved match still rated with the default
	assert.Equal(t, 2.5, *show.Matches[0].ActualQuality)
}
