package domain

import (
	"time"

	"github.com/google/uuid"
)

// VenueSnapshot is the venue view the engine consumes. The engine does not
// enforce booking exclusivity; the scheduling layer owns conflict
// prevention.
type VenueSnapshot struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity"`
	RentalCost  int64     `json:"rental_cost"`
	Prestige    int       `json:"prestige"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}
