package lineage

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/kayfabe/promoter/internal/domain"
	"github.com/kayfabe/promoter/internal/guard"
)

// Tracker maintains championship reign history as an append-only ledger.
// Mutating operations against the same title serialize through a keyed
// mutex: crown and defense both read-then-append the single open reign,
// and a race could leave two open reigns or attach a defense to a reign
// being closed.
//
// The tracker performs no eligibility checks; the caller must have
// verified the new holder before crowning.
type Tracker struct {
	locks *guard.KeyedMutex
	now   func() time.Time
}

// NewTracker creates a tracker using the wall clock.
func NewTracker() *Tracker {
	return NewTrackerWithClock(time.Now)
}

// NewTrackerWithClock creates a tracker with an injected clock so
// day-arithmetic is testable.
func NewTrackerWithClock(now func() time.Time) *Tracker {
	return &Tracker{locks: guard.NewKeyedMutex(), now: now}
}

// CrownChampion closes the current open reign, if any, and appends a new
// open reign for newHolder. Closing and appending are one logical
// transition: the ledger never holds two open reigns, and never zero while
// a current holder is set.
func (t *Tracker) CrownChampion(title *domain.ChampionshipRecord, newHolder uuid.UUID, wonFrom, wonAtShow *uuid.UUID) (*domain.TitleReign, error) {
	if newHolder == uuid.Nil {
		return nil, domain.ErrValidation("new holder is required")
	}

	unlock := t.locks.Lock(title.ID.String())
	defer unlock()

	now := t.now()

	if open := title.OpenReign(); open != nil {
		end := now
		open.EndDate = &end
	}

	title.TitleHistory = append(title.TitleHistory, domain.TitleReign{
		ID:        uuid.New(),
		Holder:    newHolder,
		WonFrom:   wonFrom,
		WonAt:     wonAtShow,
		StartDate: now,
		Defenses:  []domain.TitleDefense{},
	})
	title.CurrentHolder = &newHolder

	return &title.TitleHistory[len(title.TitleHistory)-1], nil
}

// RecordDefense appends a successful defense to the open reign. A title
// with no current holder or no open reign is a precondition violation:
// defaulting here would corrupt the ledger.
//
// Prestige adjusts by (quality-3)*2, clamped to [1,100], when a quality is
// supplied; an omitted quality records the neutral 3 and leaves prestige
// alone.
func (t *Tracker) RecordDefense(title *domain.ChampionshipRecord, challenger, show uuid.UUID, quality *float64) (*domain.TitleDefense, error) {
	unlock := t.locks.Lock(title.ID.String())
	defer unlock()

	if title.CurrentHolder == nil {
		return nil, domain.ErrPrecondition("cannot record defense: championship has no current holder")
	}
	open := title.OpenReign()
	if open == nil {
		return nil, domain.ErrPrecondition("cannot record defense: no active reign")
	}
	if open.Holder != *title.CurrentHolder {
		return nil, domain.ErrPrecondition("lineage corrupt: open reign does not belong to current holder")
	}

	now := t.now()
	q := 3.0
	if quality != nil {
		q = *quality
	}

	defense := domain.TitleDefense{Against: challenger, Show: show, Date: now, Quality: q}
	open.Defenses = append(open.Defenses, defense)
	open.DefenseCount++

	title.LastDefended = &now
	if !title.HasDefendedAt(show) {
		title.DefendedAt = append(title.DefendedAt, show)
	}
	if quality != nil {
		title.Prestige = domain.Clamp(title.Prestige+int((q-3)*2), 1, 100)
	}

	return &open.Defenses[len(open.Defenses)-1], nil
}

// CurrentReignDurationDays returns how long the active reign has run, in
// ceiling days, or 0 with no open reign. Derived, never stored.
func (t *Tracker) CurrentReignDurationDays(title *domain.ChampionshipRecord) int {
	open := title.OpenReign()
	if open == nil {
		return 0
	}
	return ceilDays(open.StartDate, t.now())
}

// TotalDaysHeld sums ceiling-day durations of every reign belonging to
// wrestlerID, open reigns measured to now. Each historical reign counts
// exactly once.
func (t *Tracker) TotalDaysHeld(title *domain.ChampionshipRecord, wrestlerID uuid.UUID) int {
	now := t.now()
	total := 0
	for i := range title.TitleHistory {
		r := &title.TitleHistory[i]
		if r.Holder != wrestlerID {
			continue
		}
		end := now
		if r.EndDate != nil {
			end = *r.EndDate
		}
		total += ceilDays(r.StartDate, end)
	}
	return total
}

func ceilDays(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}
