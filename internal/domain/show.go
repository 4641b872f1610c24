package domain

import (
	"time"

	"github.com/google/uuid"
)

// ShowStatus tracks the lifecycle of a show.
type ShowStatus string

const (
	ShowDraft      ShowStatus = "Draft"
	ShowScheduled  ShowStatus = "Scheduled"
	ShowInProgress ShowStatus = "In Progress"
	ShowCompleted  ShowStatus = "Completed"
	ShowCancelled  ShowStatus = "Cancelled"
)

// showTransitions defines the legal state machine edges. Completed and
// Cancelled are terminal; Cancelled is reachable from any non-Completed
// state.
var showTransitions = map[ShowStatus][]ShowStatus{
	ShowDraft:      {ShowScheduled, ShowCancelled},
	ShowScheduled:  {ShowInProgress, ShowCancelled},
	ShowInProgress: {ShowCompleted, ShowCancelled},
}

// CanTransition reports whether the status change from -> to is legal.
func CanTransition(from, to ShowStatus) bool {
	for _, next := range showTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowsStructuralEdits reports whether the card (matches/segments) may
// still be changed. Only Draft and Scheduled shows accept edits.
func (s ShowStatus) AllowsStructuralEdits() bool {
	return s == ShowDraft || s == ShowScheduled
}

// ShowType drives attendance and production-cost modifiers.
type ShowType string

const (
	ShowPayPerView   ShowType = "Pay-Per-View"
	ShowSpecialEvent ShowType = "Special Event"
	ShowWeeklyTV     ShowType = "Weekly TV"
	ShowHouseShow    ShowType = "House Show"
)

// MatchType classifies a match. The quality estimator also feeds it to the
// rating model as a scoring context: style-named types (Technical,
// High-Flyer, Powerhouse) emphasize the matching attribute, everything
// else falls through to the default weighting.
type MatchType string

const (
	MatchSingles      MatchType = "Singles"
	MatchTagTeam      MatchType = "Tag Team"
	MatchTripleThreat MatchType = "Triple Threat"
	MatchFatalFourWay MatchType = "Fatal Four-Way"
	MatchBattleRoyal  MatchType = "Battle Royal"
	MatchLadder       MatchType = "Ladder"
	MatchSteelCage    MatchType = "Steel Cage"
	MatchSubmission   MatchType = "Submission"
	MatchHardcore     MatchType = "Hardcore"
)

// BookedOutcome describes how a match finish was booked.
type BookedOutcome string

const (
	OutcomeClean     BookedOutcome = "clean"
	OutcomeDQ        BookedOutcome = "dq"
	OutcomeCountout  BookedOutcome = "countout"
	OutcomeNoContest BookedOutcome = "no_contest"
)

// MatchParticipant is one entry in a match's ordered participant list.
type MatchParticipant struct {
	WrestlerID uuid.UUID `json:"wrestler_id"`
	IsWinner   bool      `json:"is_winner"`
	Team       int       `json:"team"`
}

// MatchRecord is one match on a show's card. It has no identity outside
// its owning show. Quality fields are populated exactly once, at the
// show's Completed transition.
type MatchRecord struct {
	ID                  uuid.UUID          `json:"id"`
	Position            int                `json:"position"`
	MatchType           MatchType          `json:"match_type"`
	Participants        []MatchParticipant `json:"participants"`
	ChampionshipID      *uuid.UUID         `json:"championship_id,omitempty"`
	IsChampionshipMatch bool               `json:"is_championship_match"`
	Stipulation         string             `json:"stipulation,omitempty"`
	DurationMinutes     int                `json:"duration_minutes"`
	BookedOutcome       BookedOutcome      `json:"booked_outcome"`
	PlannedQuality      float64            `json:"planned_quality"`
	ActualQuality       *float64           `json:"actual_quality,omitempty"`
	PopularityImpact    *float64           `json:"popularity_impact,omitempty"`
}

// SegmentType classifies non-match card entries.
type SegmentType string

const (
	SegmentPromo        SegmentType = "Promo"
	SegmentInterview    SegmentType = "Interview"
	SegmentAngle        SegmentType = "Angle"
	SegmentBackstage    SegmentType = "Backstage"
	SegmentVideoPackage SegmentType = "Video Package"
)

// SegmentRecord is one non-match entry on a show's card. Same ownership and
// lifecycle rules as MatchRecord, without win/loss semantics.
type SegmentRecord struct {
	ID               uuid.UUID   `json:"id"`
	Position         int         `json:"position"`
	SegmentType      SegmentType `json:"segment_type"`
	Participants     []uuid.UUID `json:"participants"`
	PlannedQuality   float64     `json:"planned_quality"`
	ActualQuality    *float64    `json:"actual_quality,omitempty"`
	PopularityImpact *float64    `json:"popularity_impact,omitempty"`
}

// FinancialBlock holds the profit/loss statement computed at completion.
// All amounts are whole currency units.
type FinancialBlock struct {
	Attendance         int   `json:"attendance"`
	TicketRevenue      int64 `json:"ticket_revenue"`
	MerchandiseRevenue int64 `json:"merchandise_revenue"`
	VenueRentalCost    int64 `json:"venue_rental_cost"`
	ProductionCost     int64 `json:"production_cost"`
	TalentCost         int64 `json:"talent_cost"`
	Profit             int64 `json:"profit"`
}

// RatingBlock holds the quality aggregates computed at completion.
type RatingBlock struct {
	OverallRating        float64 `json:"overall_rating"`
	CriticRating         float64 `json:"critic_rating"`
	AudienceSatisfaction int     `json:"audience_satisfaction"`
}

// ShowRecord owns its ordered card of matches and segments. Financial and
// rating blocks stay zero-valued until the Completed transition; a
// Completed show is fully immutable.
type ShowRecord struct {
	ID          uuid.UUID  `json:"id"`
	CompanyID   uuid.UUID  `json:"company_id"`
	VenueID     uuid.UUID  `json:"venue_id"`
	Name        string     `json:"name"`
	ShowType    ShowType   `json:"show_type"`
	Status      ShowStatus `json:"status"`
	ShowDate    time.Time  `json:"show_date"`
	TicketPrice int64      `json:"ticket_price"`

	Matches  []MatchRecord   `json:"matches"`
	Segments []SegmentRecord `json:"segments"`

	FinancialBlock
	RatingBlock

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UniqueParticipantIDs returns the de-duplicated union of all match and
// segment participants, preserving first-seen order.
func (s *ShowRecord) UniqueParticipantIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, m := range s.Matches {
		for _, p := range m.Participants {
			if !seen[p.WrestlerID] {
				seen[p.WrestlerID] = true
				ids = append(ids, p.WrestlerID)
			}
		}
	}
	for _, seg := range s.Segments {
		for _, id := range seg.Participants {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}
