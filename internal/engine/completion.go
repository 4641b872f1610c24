package engine

import (
	"math"

	"github.com/google/uuid"
	"github.com/kayfabe/promoter/internal/domain"
)

// CompletionInput carries the resolved snapshots a show completion needs.
// Missing entries trigger the documented fail-soft defaults instead of
// aborting.
type CompletionInput struct {
	Venue     *domain.VenueSnapshot
	Company   *domain.CompanySnapshot
	Wrestlers map[uuid.UUID]domain.WrestlerSnapshot
}

// Outcome summarizes a completed show: the new company standing and every
// degraded-input substitution made along the way.
type Outcome struct {
	CompanyPopularity int      `json:"company_popularity"`
	CompanyMoney      int64    `json:"company_money"`
	Degraded          []string `json:"degraded,omitempty"`
}

// CompleteShow resolves a show from "In Progress" to "Completed": every
// match and segment is scored, the card is aggregated into overall/critic
// ratings and audience satisfaction, attendance and finances are resolved,
// and the promoting company's popularity and money deltas are computed.
//
// All derived fields are written to the in-memory record only; the caller
// persists the whole result once. A show in any other state is rejected
// with an invalid-transition error and left untouched.
func (e *Engine) CompleteShow(show *domain.ShowRecord, in CompletionInput) (*Outcome, error) {
	if show.Status != domain.ShowInProgress {
		return nil, domain.ErrInvalidTransition("show", show.Status, domain.ShowCompleted)
	}

	out := &Outcome{}

	var weightedSum, weightTotal float64

	for i := range show.Matches {
		m := &show.Matches[i]
		q := e.RateMatch(*m, resolveMatch(*m, in.Wrestlers))
		if q.Degraded {
			out.Degraded = append(out.Degraded, q.Reason)
		}
		impact := domain.Round1((q.Value - 3) * 2)
		m.ActualQuality = &q.Value
		m.PopularityImpact = &impact

		weightedSum += q.Value * float64(m.Position)
		weightTotal += float64(m.Position)
	}

	for i := range show.Segments {
		s := &show.Segments[i]
		q := e.RateSegment(*s, resolveSegment(*s, in.Wrestlers))
		if q.Degraded {
			out.Degraded = append(out.Degraded, q.Reason)
		}
		impact := domain.Round1((q.Value - 3) * 1.5)
		s.ActualQuality = &q.Value
		s.PopularityImpact = &impact

		weight := float64(s.Position) * 0.5
		weightedSum += q.Value * weight
		weightTotal += weight
	}

	overall := 3.0
	if weightTotal > 0 {
		overall = weightedSum / weightTotal
	}
	show.OverallRating = domain.Round1(overall)
	show.CriticRating = domain.Round1(domain.Clamp(overall+uniform(e.rand, -0.3, 0.3), 1, 5))
	show.AudienceSatisfaction = int(math.Round(overall * 20))

	att := e.ProjectAttendance(*show, in.Venue, in.Company)
	if att.Degraded {
		out.Degraded = append(out.Degraded, att.Reason)
	}

	fin := e.ResolveFinances(*show, in.Venue, att.Count, resolveTalent(show, in.Wrestlers))
	if fin.Degraded {
		out.Degraded = append(out.Degraded, fin.Reason)
	}
	show.FinancialBlock = fin.FinancialBlock
	show.Attendance = att.Count

	show.Status = domain.ShowCompleted

	if in.Company != nil {
		in.Company.BoostPopularity(int(math.Round((overall - 3) * 2)))
		in.Company.Money += show.Profit
		out.CompanyPopularity = in.Company.Popularity
		out.CompanyMoney = in.Company.Money
	}

	return out, nil
}

func resolveMatch(m domain.MatchRecord, roster map[uuid.UUID]domain.WrestlerSnapshot) []domain.WrestlerSnapshot {
	var ws []domain.WrestlerSnapshot
	for _, p := range m.Participants {
		if w, ok := roster[p.WrestlerID]; ok {
			ws = append(ws, w)
		}
	}
	return ws
}

func resolveSegment(s domain.SegmentRecord, roster map[uuid.UUID]domain.WrestlerSnapshot) []domain.WrestlerSnapshot {
	var ws []domain.WrestlerSnapshot
	for _, id := range s.Participants {
		if w, ok := roster[id]; ok {
			ws = append(ws, w)
		}
	}
	return ws
}

func resolveTalent(show *domain.ShowRecord, roster map[uuid.UUID]domain.WrestlerSnapshot) []domain.WrestlerSnapshot {
	var ws []domain.WrestlerSnapshot
	for _, id := range show.UniqueParticipantIDs() {
		if w, ok := roster[id]; ok {
			ws = append(ws, w)
		}
	}
	return ws
}
