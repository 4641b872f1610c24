package engine

import (
	"github.com/kayfabe/promoter/internal/domain"
)

// Quality scoring defaults. A match that cannot resolve any participant
// data still gets a rating so show completion is never blocked.
const (
	defaultMatchQuality   = 2.5
	defaultSegmentQuality = 3.0
)

// Degraded-input reason codes.
const (
	ReasonNoParticipants      = "no_resolvable_participants"
	ReasonPartialParticipants = "partial_participants"
	ReasonMissingVenue        = "missing_venue"
	ReasonMissingCompany      = "missing_company"
)

// Quality is a two-tier scoring result: a degraded value carries the
// substituted default (or partial computation) and a reason code, so
// callers can log the distinction without failing the show.
type Quality struct {
	Value    float64 `json:"value"`
	Degraded bool    `json:"degraded"`
	Reason   string  `json:"reason,omitempty"`
}

// Engine runs the show simulation formulas. One Engine is safe for
// concurrent use; it holds no per-show state.
type Engine struct {
	rand Source
}

// NewEngine creates an engine with the given randomness source. A nil
// source falls back to the production generator.
func NewEngine(src Source) *Engine {
	if src == nil {
		src = NewSource()
	}
	return &Engine{rand: src}
}

// RateMatch scores a match on the 1-5 scale from its participants'
// popularity and context-weighted skill, plus championship, stipulation
// and card-position bonuses and a small random perturbation.
//
// Fail-soft: with no resolvable participants the fixed 2.5 default is
// returned; with a partial set the score is computed from what resolved
// and flagged degraded.
func (e *Engine) RateMatch(m domain.MatchRecord, participants []domain.WrestlerSnapshot) Quality {
	if len(participants) == 0 {
		return Quality{Value: defaultMatchQuality, Degraded: true, Reason: ReasonNoParticipants}
	}

	var popSum, skillSum float64
	for _, w := range participants {
		popSum += float64(w.Popularity)
		skillSum += SkillFactor(w, domain.Style(m.MatchType))
	}
	n := float64(len(participants))
	meanPop := popSum / n
	meanSkill := skillSum / n

	// Both means land on a 1-5 scale at /20; base is their average.
	quality := (meanPop/20 + meanSkill/20) / 2

	if m.IsChampionshipMatch {
		quality += 0.5
	}
	if m.Stipulation != "" {
		quality += 0.3
	}
	quality += float64(m.Position) / 10
	quality += uniform(e.rand, -0.5, 0.5)

	q := Quality{Value: domain.Round1(domain.Clamp(quality, 1, 5))}
	if len(participants) < len(m.Participants) {
		q.Degraded = true
		q.Reason = ReasonPartialParticipants
	}
	return q
}

// RateSegment scores a non-match segment: the planned quality adjusted by
// how charismatic the talent involved is, plus a random perturbation.
// With no participants the planned quality stands as booked.
func (e *Engine) RateSegment(s domain.SegmentRecord, participants []domain.WrestlerSnapshot) Quality {
	planned := s.PlannedQuality
	if planned == 0 {
		planned = defaultSegmentQuality
	}

	if len(participants) == 0 {
		degraded := len(s.Participants) > 0
		q := Quality{Value: domain.Round1(domain.Clamp(planned, 1, 5)), Degraded: degraded}
		if degraded {
			q.Reason = ReasonNoParticipants
		}
		return q
	}

	var charismaSum float64
	for _, w := range participants {
		charismaSum += float64(w.Charisma)
	}
	meanCharisma := charismaSum / float64(len(participants))

	quality := planned + (meanCharisma-50)/25
	quality += uniform(e.rand, -0.5, 0.5)

	q := Quality{Value: domain.Round1(domain.Clamp(quality, 1, 5))}
	if len(participants) < len(s.Participants) {
		q.Degraded = true
		q.Reason = ReasonPartialParticipants
	}
	return q
}
