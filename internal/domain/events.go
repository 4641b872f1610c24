package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Aggregate types for outbox events.
const (
	AggregateShow         = "show"
	AggregateChampionship = "championship"
	AggregateCompany      = "company"
)

// Event types published through the outbox.
const (
	EventShowCompleted = "show.completed"
	EventTitleChanged  = "title.changed"
	EventTitleDefended = "title.defended"
)

// OutboxDraft is an event pending insertion into the outbox table, written
// in the same transaction as the state change it describes.
type OutboxDraft struct {
	SeqID         int64           `json:"seq_id,omitempty"`
	EventID       uuid.UUID       `json:"event_id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     string          `json:"event_type"`
	PartitionKey  string          `json:"partition_key"`
	Headers       json.RawMessage `json:"headers"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// NewShowCompletedEvent carries everything an external notifier needs to
// announce a completed show.
func NewShowCompletedEvent(show *ShowRecord, company *CompanySnapshot, venue *VenueSnapshot) OutboxDraft {
	payload, _ := json.Marshal(map[string]interface{}{
		"show_id":               show.ID.String(),
		"show_name":             show.Name,
		"company_name":          company.Name,
		"venue_name":            venue.Name,
		"venue_location":        venue.Location,
		"attendance":            show.Attendance,
		"capacity":              venue.Capacity,
		"overall_rating":        show.OverallRating,
		"critic_rating":         show.CriticRating,
		"audience_satisfaction": show.AudienceSatisfaction,
		"ticket_revenue":        show.TicketRevenue,
		"merchandise_revenue":   show.MerchandiseRevenue,
		"profit":                show.Profit,
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateShow,
		AggregateID:   show.ID.String(),
		EventType:     EventShowCompleted,
		PartitionKey:  show.CompanyID.String(),
		Headers:       json.RawMessage(`{}`),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewTitleChangedEvent records a championship changing hands.
func NewTitleChangedEvent(title *ChampionshipRecord, reign *TitleReign) OutboxDraft {
	payload, _ := json.Marshal(map[string]interface{}{
		"championship_id": title.ID.String(),
		"championship":    title.Name,
		"new_holder":      reign.Holder.String(),
		"won_from":        uuidPtrString(reign.WonFrom),
		"won_at_show":     uuidPtrString(reign.WonAt),
		"start_date":      reign.StartDate,
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateChampionship,
		AggregateID:   title.ID.String(),
		EventType:     EventTitleChanged,
		PartitionKey:  title.ID.String(),
		Headers:       json.RawMessage(`{}`),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewTitleDefendedEvent records a successful defense.
func NewTitleDefendedEvent(title *ChampionshipRecord, defense TitleDefense) OutboxDraft {
	payload, _ := json.Marshal(map[string]interface{}{
		"championship_id": title.ID.String(),
		"championship":    title.Name,
		"holder":          uuidPtrString(title.CurrentHolder),
		"against":         defense.Against.String(),
		"show":            defense.Show.String(),
		"quality":         defense.Quality,
		"prestige":        title.Prestige,
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateChampionship,
		AggregateID:   title.ID.String(),
		EventType:     EventTitleDefended,
		PartitionKey:  title.ID.String(),
		Headers:       json.RawMessage(`{}`),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

func uuidPtrString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
