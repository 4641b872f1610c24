package domain

import (
	"time"

	"github.com/google/uuid"
)

// TitleDefense records one successful defense within a reign.
type TitleDefense struct {
	Against uuid.UUID `json:"against"`
	Show    uuid.UUID `json:"show"`
	Date    time.Time `json:"date"`
	Quality float64   `json:"quality"`
}

// TitleReign is one entry in a championship's append-only history. A nil
// EndDate marks the single active reign.
type TitleReign struct {
	ID           uuid.UUID      `json:"id"`
	Holder       uuid.UUID      `json:"holder"`
	WonFrom      *uuid.UUID     `json:"won_from,omitempty"`
	WonAt        *uuid.UUID     `json:"won_at,omitempty"`
	StartDate    time.Time      `json:"start_date"`
	EndDate      *time.Time     `json:"end_date,omitempty"`
	DefenseCount int            `json:"defense_count"`
	Defenses     []TitleDefense `json:"defenses"`
}

// IsOpen reports whether the reign is still active.
func (r *TitleReign) IsOpen() bool { return r.EndDate == nil }

// ChampionshipRecord tracks a title and its full lineage. TitleHistory is
// append-only: reigns are closed by setting EndDate, never removed.
//
// Invariant: exactly one open reign exists while CurrentHolder is set,
// zero otherwise.
type ChampionshipRecord struct {
	ID            uuid.UUID    `json:"id"`
	CompanyID     uuid.UUID    `json:"company_id"`
	Name          string       `json:"name"`
	Prestige      int          `json:"prestige"`
	CurrentHolder *uuid.UUID   `json:"current_holder,omitempty"`
	LastDefended  *time.Time   `json:"last_defended,omitempty"`
	DefendedAt    []uuid.UUID  `json:"defended_at"`
	TitleHistory  []TitleReign `json:"title_history"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// OpenReign returns a pointer to the single active reign, or nil.
func (c *ChampionshipRecord) OpenReign() *TitleReign {
	for i := range c.TitleHistory {
		if c.TitleHistory[i].IsOpen() {
			return &c.TitleHistory[i]
		}
	}
	return nil
}

// OpenReignCount counts active reigns. Anything other than 0 or 1 means
// the ledger is corrupt.
func (c *ChampionshipRecord) OpenReignCount() int {
	n := 0
	for i := range c.TitleHistory {
		if c.TitleHistory[i].IsOpen() {
			n++
		}
	}
	return n
}

// HasDefendedAt reports whether the show already appears in the defense
// venue set.
func (c *ChampionshipRecord) HasDefendedAt(show uuid.UUID) bool {
	for _, id := range c.DefendedAt {
		if id == show {
			return true
		}
	}
	return false
}
