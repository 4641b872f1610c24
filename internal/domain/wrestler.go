package domain

import (
	"time"

	"github.com/google/uuid"
)

// Style identifies a wrestler's in-ring style. Match types reuse the same
// vocabulary as a scoring context: a style-matched context emphasizes the
// corresponding attribute.
type Style string

const (
	StyleTechnical  Style = "Technical"
	StyleHighFlyer  Style = "High-Flyer"
	StylePowerhouse Style = "Powerhouse"
	StyleBrawler    Style = "Brawler"
	StyleShowman    Style = "Showman"
	StyleAllRounder Style = "All-Rounder"
)

// Attributes holds the four core in-ring attributes, each in [1,100].
type Attributes struct {
	Strength  int `json:"strength"`
	Agility   int `json:"agility"`
	Charisma  int `json:"charisma"`
	Technical int `json:"technical"`
}

// WrestlerSnapshot is the read-only wrestler view the engine consumes.
type WrestlerSnapshot struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
	Attributes
	Style      Style     `json:"style"`
	Popularity int       `json:"popularity"`
	Salary     int64     `json:"salary"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BoostPopularity applies a signed popularity delta, re-clamping to [1,100].
func (w *WrestlerSnapshot) BoostPopularity(delta int) {
	w.Popularity = Clamp(w.Popularity+delta, 1, 100)
}

// CompanySnapshot is the promoting company view the engine consumes and
// mutates on show completion.
type CompanySnapshot struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Popularity int       `json:"popularity"`
	Money      int64     `json:"money"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BoostPopularity applies a signed popularity delta, re-clamping to [1,100].
func (c *CompanySnapshot) BoostPopularity(delta int) {
	c.Popularity = Clamp(c.Popularity+delta, 1, 100)
}
