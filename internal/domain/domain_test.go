package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(-5, 1, 100))
	assert.Equal(t, 100, Clamp(250, 1, 100))
	assert.Equal(t, 42, Clamp(42, 1, 100))
	assert.Equal(t, 1.0, Clamp(0.3, 1.0, 5.0))
	assert.Equal(t, 5.0, Clamp(6.8, 1.0, 5.0))
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 4.0, Round1(4.025))
	assert.Equal(t, 4.3, Round1(4.333333))
	assert.Equal(t, 2.5, Round1(2.45))
	assert.Equal(t, 3.0, Round1(3.0))
}

func TestShowStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to ShowStatus
		allowed  bool
	}{
		{ShowDraft, ShowScheduled, true},
		{ShowDraft, ShowCancelled, true},
		{ShowDraft, ShowInProgress, false},
		{ShowScheduled, ShowInProgress, true},
		{ShowScheduled, ShowCancelled, true},
		{ShowScheduled, ShowCompleted, false},
		{ShowInProgress, ShowCompleted, true},
		{ShowInProgress, ShowCancelled, true},
		{ShowInProgress, ShowDraft, false},
		{ShowCompleted, ShowCancelled, false},
		{ShowCompleted, ShowDraft, false},
		{ShowCancelled, ShowScheduled, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.allowed, CanTransition(c.from, c.to),
			"%s -> %s", c.from, c.to)
	}
}

func TestAllowsStructuralEdits(t *testing.T) {
	assert.True(t, ShowDraft.AllowsStructuralEdits())
	assert.True(t, ShowScheduled.AllowsStructuralEdits())
	assert.False(t, ShowInProgress.AllowsStructuralEdits())
	assert.False(t, ShowCompleted.AllowsStructuralEdits())
	assert.False(t, ShowCancelled.AllowsStructuralEdits())
}

func TestUniqueParticipantIDs(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	show := &ShowRecord{
		Matches: []MatchRecord{
			{Participants: []MatchParticipant{{WrestlerID: a}, {WrestlerID: b}}},
			{Participants: []MatchParticipant{{WrestlerID: b}, {WrestlerID: c}}},
		},
		Segments: []SegmentRecord{
			{Participants: []uuid.UUID{a, c}},
		},
	}
	assert.Equal(t, []uuid.UUID{a, b, c}, show.UniqueParticipantIDs())
}

func TestOpenReign(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	end := time.Now()
	title := &ChampionshipRecord{TitleHistory: []TitleReign{
		{ID: uuid.New(), Holder: a, EndDate: &end},
		{ID: uuid.New(), Holder: b},
	}}

	open := title.OpenReign()
	require.NotNil(t, open)
	assert.Equal(t, b, open.Holder)
	assert.Equal(t, 1, title.OpenReignCount())

	title.TitleHistory[1].EndDate = &end
	assert.Nil(t, title.OpenReign())
	assert.Equal(t, 0, title.OpenReignCount())
}

func TestHasDefendedAt(t *testing.T) {
	show := uuid.New()
	title := &ChampionshipRecord{DefendedAt: []uuid.UUID{show}}
	assert.True(t, title.HasDefendedAt(show))
	assert.False(t, title.HasDefendedAt(uuid.New()))
}

func TestBoostPopularityClamps(t *testing.T) {
	w := &WrestlerSnapshot{Popularity: 98}
	w.BoostPopularity(5)
	assert.Equal(t, 100, w.Popularity)

	c := &CompanySnapshot{Popularity: 3}
	c.BoostPopularity(-10)
	assert.Equal(t, 1, c.Popularity)
}

func TestValidators(t *testing.T) {
	assert.NoError(t, ValidateAttributes(Attributes{Strength: 1, Agility: 50, Charisma: 100, Technical: 75}))
	assert.Error(t, ValidateAttributes(Attributes{Strength: 0, Agility: 50, Charisma: 50, Technical: 50}))
	assert.Error(t, ValidateAttributes(Attributes{Strength: 50, Agility: 101, Charisma: 50, Technical: 50}))

	assert.NoError(t, ValidateStyle(StyleHighFlyer))
	assert.Error(t, ValidateStyle(Style("Luchador")))

	assert.NoError(t, ValidatePlannedQuality(3.5))
	assert.Error(t, ValidatePlannedQuality(0.5))
	assert.Error(t, ValidatePlannedQuality(5.1))

	assert.NoError(t, ValidatePosition(1))
	assert.Error(t, ValidatePosition(0))

	assert.NoError(t, ValidateCapacity(500))
	assert.Error(t, ValidateCapacity(0))

	assert.NoError(t, ValidateEmail("booker@promotion.test"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("@promotion.test"))
}

func TestAppErrorCodes(t *testing.T) {
	err := ErrInvalidTransition("show", ShowDraft, ShowCompleted)
	assert.Equal(t, "INVALID_TRANSITION", err.Code)
	assert.Equal(t, 409, err.Status)
	assert.Contains(t, err.Error(), "Draft")

	pre := ErrPrecondition("no active reign")
	assert.Equal(t, "PRECONDITION_VIOLATION", pre.Code)
	assert.Equal(t, 422, pre.Status)

	nf := ErrNotFound("show", "abc")
	assert.Equal(t, 404, nf.Status)
}

func TestShowCompletedEventPayload(t *testing.T) {
	show := &ShowRecord{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		Name:      "Winter Clash",
		FinancialBlock: FinancialBlock{
			Attendance:         12000,
			TicketRevenue:      240000,
			MerchandiseRevenue: 120000,
			Profit:             180000,
		},
		RatingBlock: RatingBlock{
			OverallRating:        4.2,
			CriticRating:         4.4,
			AudienceSatisfaction: 84,
		},
	}
	company := &CompanySnapshot{Name: "Atlas Wrestling"}
	venue := &VenueSnapshot{Name: "Harbor Arena", Location: "Rotterdam", Capacity: 15000}

	event := NewShowCompletedEvent(show, company, venue)
	assert.Equal(t, AggregateShow, event.AggregateType)
	assert.Equal(t, EventShowCompleted, event.EventType)
	assert.Equal(t, show.CompanyID.String(), event.PartitionKey)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.Equal(t, "Winter Clash", payload["show_name"])
	assert.Equal(t, "Atlas Wrestling", payload["company_name"])
	assert.Equal(t, "Harbor Arena", payload["venue_name"])
	assert.Equal(t, float64(12000), payload["attendance"])
	assert.Equal(t, float64(15000), payload["capacity"])
	assert.Equal(t, 4.2, payload["overall_rating"])
	assert.Equal(t, float64(180000), payload["profit"])
}

func TestTitleChangedEventPayload(t *testing.T) {
	holder := uuid.New()
	title := &ChampionshipRecord{ID: uuid.New(), Name: "World Heavyweight"}
	reign := &TitleReign{Holder: holder, StartDate: time.Now()}

	event := NewTitleChangedEvent(title, reign)
	assert.Equal(t, AggregateChampionship, event.AggregateType)
	assert.Equal(t, EventTitleChanged, event.EventType)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.Equal(t, holder.String(), payload["new_holder"])
	assert.Equal(t, "", payload["won_from"])
}
